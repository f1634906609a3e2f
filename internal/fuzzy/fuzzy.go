// Package fuzzy ranks registered switch forms against a mistyped key.
// Used by easyparse to attach "did you mean" hints to unknown switches and
// rejected option values.
package fuzzy

import (
	"cmp"
	"slices"
)

// DefaultMaxDistance is the edit distance used when callers pass zero
const DefaultMaxDistance = 2

// Matcher scores candidate forms against an input key
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given max edit distance
func NewMatcher(maxDistance int) *Matcher {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single letters match too many forms to be useful
	}
}

// Match is a ranked candidate
type Match struct {
	Form     string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// Best returns the best candidate for key, or "" when nothing is close enough.
// Inputs are expected to be folded already.
func (m *Matcher) Best(key string, forms []string) string {
	matches := m.Rank(key, forms)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Form
}

// Rank returns every candidate within the distance bound, best first.
// Ties keep registration order.
func (m *Matcher) Rank(key string, forms []string) []Match {
	if len(key) < m.minLength {
		return nil
	}

	var matches []Match
	seen := make(map[string]struct{}, len(forms))
	for _, form := range forms {
		if form == "" || form == key {
			continue
		}
		if _, dup := seen[form]; dup {
			continue
		}
		seen[form] = struct{}{}

		distance := m.distance(key, form)
		if distance > m.maxDistance {
			continue
		}
		matches = append(matches, Match{
			Form:     form,
			Distance: distance,
			Score:    m.score(key, form, distance),
		})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
	return matches
}

// score weights edit distance first, then shared prefix and length similarity
func (m *Matcher) score(key, form string, distance int) float64 {
	longest := max(len(key), len(form))
	if longest == 0 {
		return 1.0
	}

	s := 1.0 - float64(distance)/float64(longest)

	if p := commonPrefix(key, form); p > 0 {
		s += float64(p) / float64(min(len(key), len(form))) * 0.3
	}

	diff := len(key) - len(form)
	if diff < 0 {
		diff = -diff
	}
	s += (1.0 - float64(diff)/float64(longest)) * 0.2

	return min(s, 1.0)
}

// distance is the Levenshtein distance between a and b, cut off at maxDistance+1
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	gap := len(a) - len(b)
	if gap < 0 {
		gap = -gap
	}
	if gap > m.maxDistance {
		return m.maxDistance + 1
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Suggest finds the closest switch form for key
func Suggest(key string, forms []string, maxDistance int) string {
	return NewMatcher(maxDistance).Best(key, forms)
}

// SuggestN returns at most limit close forms, best first
func SuggestN(key string, forms []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Rank(key, forms)
	out := make([]string, 0, min(len(matches), limit))
	for _, match := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, match.Form)
	}
	return out
}
