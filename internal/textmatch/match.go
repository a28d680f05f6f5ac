// Package textmatch implements the fuzzy text matching used by catalog
// search and the "similar books" suggestion. All of it is heuristic: a direct
// case-insensitive substring check with a bounded edit-distance fallback, and
// whole-word overlap. None of it is ranked search.
package textmatch

import "strings"

// MaxDistance is the edit-distance threshold accepted by Fuzzy. It is a
// fixed tuning constant, not user-configurable.
const MaxDistance = 2

// Fuzzy reports whether query matches target: either one contains the other
// case-insensitively, or some word of target is within MaxDistance edits of
// the query.
func Fuzzy(query, target string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(target)
	if q == "" {
		return false
	}
	if strings.Contains(t, q) || strings.Contains(q, t) {
		return true
	}
	for _, w := range strings.Fields(t) {
		if Levenshtein(q, w) <= MaxDistance {
			return true
		}
	}
	return false
}

// SharesWord reports whether the two texts share at least one whole word,
// case-insensitively, with substring matching in either direction ("potter"
// matches "potter's").
func SharesWord(a, b string) bool {
	aw := strings.Fields(strings.ToLower(a))
	bw := strings.Fields(strings.ToLower(b))
	for _, x := range aw {
		for _, y := range bw {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				return true
			}
		}
	}
	return false
}

// Levenshtein computes the classic dynamic-programming edit distance between
// a and b, O(len(a)·len(b)) time, O(len(b)) space.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}
