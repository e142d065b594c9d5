package namegen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/croian/genhosts/ipv4"
)

// ErrNoWords is returned when the minimum word length leaves the word list
// empty (the longest syllable is six characters).
var ErrNoWords = errors.New("namegen: word list is empty")

// Pair is one generated hostname/address fixture.
type Pair struct {
	Host string `json:"host" yaml:"host"`
	Addr string `json:"addr" yaml:"addr"`
}

func (p Pair) String() string { return p.Host + " " + p.Addr }

// Generator produces hostname/address pairs from a shuffled word list. The
// zero seed means "seed from the clock"; any other value gives reproducible
// output.
type Generator struct {
	words []string
	rng   *rand.Rand
}

// New builds a Generator whose word list holds syllables of length at least
// minWordLen, shuffled with the given seed.
func New(minWordLen int, seed int64) (*Generator, error) {
	words := Words(minWordLen)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no syllables of length >= %d", ErrNoWords, minWordLen)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return &Generator{words: words, rng: rng}, nil
}

// Pairs walks every address of every subnet and names each one
// "{word}-{NNNN}". The numeric suffix counts globally across all subnets;
// the word index restarts per subnet and wraps around the word list. The
// combined result is shuffled before being returned.
func (g *Generator) Pairs(subnets []ipv4.CIDR) []Pair {
	var out []Pair
	n := 0
	for _, s := range subnets {
		j := 0
		it := s.Iter()
		for a, ok := it.Next(); ok; a, ok = it.Next() {
			out = append(out, Pair{
				Host: fmt.Sprintf("%s-%04d", g.words[j], n),
				Addr: a.AddrString(),
			})
			n++
			if j++; j >= len(g.words) {
				j = 0
			}
		}
	}
	g.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
