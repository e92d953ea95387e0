// Package textsim provides the text-similarity collaborator consumed by the
// compatibility scorer: a Sørensen–Dice coefficient over character bigrams,
// computed on lower-cased, whitespace-insensitive text.
package textsim

import "strings"

// Similarity returns a value in [0,1] describing how alike two strings are.
// Identical strings score 1; strings sharing no bigrams score 0. Either
// input being empty (after trimming) scores 0.
func Similarity(a, b string) float64 {
	a = normalize(a)
	b = normalize(b)

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigramsA := bigrams(a)

	matches := 0
	totalB := 0
	for i := 0; i+1 < len(b); i++ {
		pair := b[i : i+2]
		totalB++
		if bigramsA[pair] > 0 {
			bigramsA[pair]--
			matches++
		}
	}

	totalA := len(a) - 1
	return 2.0 * float64(matches) / float64(totalA+totalB)
}

// normalize lower-cases and collapses whitespace so formatting differences
// between descriptions do not register as dissimilarity.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func bigrams(s string) map[string]int {
	counts := make(map[string]int, len(s))
	for i := 0; i+1 < len(s); i++ {
		counts[s[i:i+2]]++
	}
	return counts
}
