// Package localmatch provides an in-memory reference matcher used only by
// tests: a cheap oracle to sanity-check that a backend's prefix/fuzzy
// behaviour is in the right ballpark, without standing up a real search
// cluster.
package localmatch

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Candidate is a minimal label carrier for oracle matching.
type Candidate struct {
	ID    string
	Label string
}

// PrefixMatch returns candidates whose label contains q as a
// case-insensitive token prefix, preserving input order.
func PrefixMatch(q string, candidates []Candidate) []Candidate {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil
	}
	var out []Candidate
	for _, c := range candidates {
		if hasPrefixToken(strings.ToLower(c.Label), needle) {
			out = append(out, c)
		}
	}
	return out
}

func hasPrefixToken(label, needle string) bool {
	for _, token := range strings.Fields(label) {
		if strings.HasPrefix(token, needle) {
			return true
		}
	}
	return strings.HasPrefix(label, needle) || strings.Contains(label, " "+needle)
}

// FuzzyMatch ranks candidates against q best match first (smallest
// fuzzy.RankMatch distance), dropping non-matches. It stands in for the ngram-based fuzzy fallback a
// real backend performs, close enough to validate ordering properties in
// tests.
func FuzzyMatch(q string, candidates []Candidate) []Candidate {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil
	}

	type scored struct {
		Candidate
		rank int
	}
	var matches []scored
	for _, c := range candidates {
		label := strings.ToLower(c.Label)
		if !fuzzy.Match(needle, label) {
			continue
		}
		matches = append(matches, scored{Candidate: c, rank: fuzzy.RankMatch(needle, label)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]Candidate, len(matches))
	for i, m := range matches {
		out[i] = m.Candidate
	}
	return out
}
