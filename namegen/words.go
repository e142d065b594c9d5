// Package namegen fabricates pronounceable hostnames and pairs them with the
// addresses of IPv4 subnets, for use as test fixtures.
package namegen

import "sort"

// Consonant clusters admitted in addition to single letters. The single
// letters dropped below (q x c, plus s j in final position) are those easily
// confused when hostnames are read aloud or typed.
var (
	initialClusters = []string{
		"bl", "br", "cl", "cr", "dr", "fl", "fr", "gl", "gr", "kr", "ki", "ky",
		"pl", "pr", "sk", "sr", "sl", "sm", "sn", "sp", "st", "str", "sw", "tr",
	}
	finalClusters = []string{
		"ct", "ft", "mp", "nd", "ng", "nk", "nt", "pt", "sk", "sp", "ss", "st",
	}
)

const vowels = "aeiou"

func consonants(drop string) map[string]struct{} {
	set := make(map[string]struct{})
	for ch := 'a'; ch <= 'z'; ch++ {
		set[string(ch)] = struct{}{}
	}
	for _, v := range "aeiou" + drop {
		delete(set, string(v))
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Words returns every consonant-vowel-consonant syllable of length at least
// minLen, in a deterministic order. Syllables run from a single consonant or
// cluster, through a vowel, to a single consonant or cluster.
func Words(minLen int) []string {
	initial := consonants("qxc")
	for _, cl := range initialClusters {
		initial[cl] = struct{}{}
	}
	final := consonants("qxcsj")
	for _, cl := range finalClusters {
		final[cl] = struct{}{}
	}

	ini := sortedKeys(initial)
	fin := sortedKeys(final)

	var out []string
	for _, a := range ini {
		for _, v := range vowels {
			for _, b := range fin {
				w := a + string(v) + b
				if len(w) >= minLen {
					out = append(out, w)
				}
			}
		}
	}
	return out
}
