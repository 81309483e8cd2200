package textnorm

import "strings"

const (
	containmentScore = 0.86
	minScore         = 0.05
	prefixWeight     = 0.55
	jaccardWeight    = 0.45
)

// Similarity scores two comparison keys (see NormalizeCompareText) in [0, 1].
//
// Equal keys score 1 and containment scores 0.86. Otherwise the score mixes a
// positional match ratio with the Jaccard index of the character sets and never
// drops below 0.05, so other signals can still break ties between weak matches.
// It is deliberately cheaper than an edit distance.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return containmentScore
	}

	ra, rb := []rune(a), []rune(b)

	same := 0
	for i := 0; i < min(len(ra), len(rb)); i++ {
		if ra[i] == rb[i] {
			same++
		}
	}
	prefix := float64(same) / float64(max(len(ra), len(rb)))

	setA := runeSet(ra)
	setB := runeSet(rb)
	inter := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			inter++
		}
	}
	jaccard := float64(inter) / float64(max(len(setA)+len(setB)-inter, 1))

	return max(prefix*prefixWeight+jaccard*jaccardWeight, minScore)
}

func runeSet(rs []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}

	return set
}
