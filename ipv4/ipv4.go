// Package ipv4 provides a small IPv4 CIDR value type: parsing, canonical
// formatting, netmask/prefix conversion, membership tests and iteration over
// every address in a block.
package ipv4

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// ErrParse is the single failure mode of this package; it is always wrapped
// together with the offending input string.
var ErrParse = errors.New("ipv4: malformed input")

const addrMax = 0xFFFFFFFF

// CIDR represents an IPv4 address together with a netmask. The value is
// immutable once constructed; derived values (Network, First, Last) are fresh
// copies, never aliases.
type CIDR struct {
	addr uint32
	mask uint32
	plen int
}

// Parse converts a subnet specification into a CIDR. Accepted forms:
//
//	"A.B.C.D"          host address, netmask defaults to /32
//	"A.B.C.D/N"        prefix length N in 0..32
//	"A.B.C.D/M.M.M.M"  explicit dotted-quad netmask
//	"NNN"              bare decimal address value fitting in 32 bits
func Parse(spec string) (CIDR, error) {
	s := strings.TrimSpace(spec)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return ParseAddrMask(s[:i], s[i+1:])
	}
	addr, err := parseAddr(s)
	if err != nil {
		return CIDR{}, err
	}
	return newCIDR(addr, addrMax), nil
}

// ParseAddrMask constructs a CIDR from pre-split address and mask strings.
// A mask token without a '.' is a prefix length; one with a '.' is taken as a
// dotted quad and used bit-for-bit. Non-contiguous masks supplied that way are
// accepted as given, not canonicalized.
func ParseAddrMask(addr, mask string) (CIDR, error) {
	a, err := parseAddr(addr)
	if err != nil {
		return CIDR{}, err
	}
	m, err := parseMask(mask)
	if err != nil {
		return CIDR{}, err
	}
	return newCIDR(a, m), nil
}

// New constructs a CIDR from raw values. A mask value of at most 32 is
// interpreted as a prefix length, anything larger as literal mask bits.
func New(addr, mask uint32) CIDR {
	if mask <= 32 {
		mask = PrefixToMask(int(mask))
	}
	return newCIDR(addr, mask)
}

func newCIDR(addr, mask uint32) CIDR {
	return CIDR{addr: addr, mask: mask, plen: MaskToPrefix(mask)}
}

func parseAddr(s string) (uint32, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil && n <= addrMax {
		return uint32(n), nil
	}
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: malformed address %q", ErrParse, s)
	}
	var v uint32
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || n > 255 {
			return 0, fmt.Errorf("%w: malformed address %q", ErrParse, s)
		}
		v = v<<8 | uint32(n)
	}
	return v, nil
}

func parseMask(s string) (uint32, error) {
	if strings.IndexByte(s, '.') < 0 {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed netmask %q", ErrParse, s)
		}
		if n > 32 {
			return 0, fmt.Errorf("%w: too many bits in netmask %q", ErrParse, s)
		}
		return PrefixToMask(int(n)), nil
	}
	return parseAddr(s)
}

// PrefixToMask expands a prefix length in 0..32 into a netmask.
func PrefixToMask(n int) uint32 {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return addrMax
	}
	return addrMax ^ (uint32(addrMax) >> uint(n))
}

// MaskToPrefix returns the prefix length of a netmask: 32 minus the position
// of the lowest set bit. For a non-contiguous mask this counts the span down
// to its lowest set bit, matching how such masks are accepted elsewhere.
func MaskToPrefix(m uint32) int {
	if m == 0 {
		return 0
	}
	return 32 - bits.TrailingZeros32(m)
}

// FormatAddr renders a 32-bit address value as a dotted quad, most
// significant byte first.
func FormatAddr(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24&0xFF, v>>16&0xFF, v>>8&0xFF, v&0xFF)
}

// Addr returns the literal address bits.
func (c CIDR) Addr() uint32 { return c.addr }

// Mask returns the netmask bits.
func (c CIDR) Mask() uint32 { return c.mask }

// PrefixLength returns the cached prefix length of the netmask.
func (c CIDR) PrefixLength() int { return c.plen }

// String renders the prefix form "A.B.C.D/N".
func (c CIDR) String() string { return fmt.Sprintf("%s/%d", FormatAddr(c.addr), c.plen) }

// Standard renders the dotted-quad netmask form "A.B.C.D/M.M.M.M".
func (c CIDR) Standard() string {
	return fmt.Sprintf("%s/%s", FormatAddr(c.addr), FormatAddr(c.mask))
}

// AddrString renders just the address as a dotted quad.
func (c CIDR) AddrString() string { return FormatAddr(c.addr) }

// Network returns the block's network address (host bits cleared), same mask.
func (c CIDR) Network() CIDR { return New(c.addr&c.mask, c.mask) }

// First returns the first address of the block, which is the network address.
func (c CIDR) First() CIDR { return c.Network() }

// Last returns the last (broadcast) address of the block, same mask.
func (c CIDR) Last() CIDR { return New(c.addr|^c.mask, c.mask) }

// NetworkString renders the network in dotted-netmask form.
func (c CIDR) NetworkString() string {
	return fmt.Sprintf("%s/%s", FormatAddr(c.addr&c.mask), FormatAddr(c.mask))
}

// NetworkCIDRString renders the network in prefix form.
func (c CIDR) NetworkCIDRString() string {
	return fmt.Sprintf("%s/%d", FormatAddr(c.addr&c.mask), c.plen)
}

// Count returns Last minus First. Note this is one less than the inclusive
// address count of the block: a /32 counts 0, a /30 counts 3. Callers depend
// on this historical quirk, so it is kept.
func (c CIDR) Count() uint32 { return c.Last().Addr() - c.First().Addr() }

// Contains reports whether o falls inside c's network: both addresses agree
// on the bits covered by c's mask.
func (c CIDR) Contains(o CIDR) bool { return o.addr&c.mask == c.addr&c.mask }

// Compare orders two values by address alone; the mask does not participate.
// Returns -1, 0 or +1.
func (c CIDR) Compare(o CIDR) int {
	switch {
	case c.addr < o.addr:
		return -1
	case c.addr > o.addr:
		return 1
	}
	return 0
}

// HashKey returns the low 31 bits of the address, suitable as a map key.
func (c CIDR) HashKey() uint32 { return c.addr & 0x7FFFFFFF }

// ReverseDNS returns the in-addr.arpa reverse mapping domain name for the
// address.
func (c CIDR) ReverseDNS() string {
	return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.",
		c.addr&0xFF, c.addr>>8&0xFF, c.addr>>16&0xFF, c.addr>>24&0xFF)
}

// AddrIterator walks every address of a block in order. It is a single-pass
// forward cursor; call Iter again for a fresh one.
type AddrIterator struct {
	cur     uint64
	mask    uint32
	network uint32
}

// Iter returns an iterator starting at the value's literal address (which may
// sit mid-block) and running through the last address of the block. The
// target network portion is captured here, once, from the constructing value.
func (c CIDR) Iter() *AddrIterator {
	return &AddrIterator{
		cur:     uint64(c.addr),
		mask:    c.mask,
		network: c.addr & c.mask,
	}
}

// Next returns the next address and true, or the zero value and false once
// the cursor's masked portion leaves the captured network. A /32 block yields
// exactly one address.
func (it *AddrIterator) Next() (CIDR, bool) {
	if it.cur > addrMax {
		return CIDR{}, false
	}
	cur := uint32(it.cur)
	if cur&it.mask != it.network {
		return CIDR{}, false
	}
	it.cur++
	return New(cur, it.mask), true
}
