// Package lcs measures how much two words have in common by their longest
// common prefix and suffix. Patchgen uses it to suggest a known tag key for a
// misspelled one.
package lcs

import "unicode/utf8"

// CommonPrefix returns the longest common prefix of a and b. It never splits a
// multibyte rune.
func CommonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) {
		ra, na := utf8.DecodeRuneInString(a[i:])
		rb, nb := utf8.DecodeRuneInString(b[i:])
		if ra != rb || na != nb {
			break
		}
		i += na
	}
	return a[:i]
}

// CommonSuffix returns the longest common suffix of a and b. It never splits a
// multibyte rune.
func CommonSuffix(a, b string) string {
	i, j := len(a), len(b)
	for i > 0 && j > 0 {
		ra, na := utf8.DecodeLastRuneInString(a[:i])
		rb, nb := utf8.DecodeLastRuneInString(b[:j])
		if ra != rb || na != nb {
			break
		}
		i -= na
		j -= nb
	}
	return a[i:]
}

// Similarity scores how similar a and b are. It is the number of runes in the
// common prefix plus the common suffix, without counting any rune twice.
func Similarity(a, b string) int {
	prefix := CommonPrefix(a, b)
	if prefix == a || prefix == b {
		return utf8.RuneCountInString(prefix)
	}
	suffix := CommonSuffix(a[len(prefix):], b[len(prefix):])
	return utf8.RuneCountInString(prefix) + utf8.RuneCountInString(suffix)
}

// Closest returns the candidate most similar to word. A candidate qualifies
// only if at least half of its runes are shared with word. The first candidate
// wins a tie.
func Closest(word string, candidates []string) (string, bool) {
	best, bestScore := "", 0
	for _, c := range candidates {
		score := Similarity(word, c)
		if score*2 < utf8.RuneCountInString(c) {
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore > 0
}
