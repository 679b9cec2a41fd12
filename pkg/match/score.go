// Package match is the core scoring and phrase logic, providing the tiered
// candidate scorer and the cursor-phrase extractor used to rank headings.
package match

import "strings"

// MatchType classifies which tier produced a score.
type MatchType uint8

const (
	MatchExact MatchType = iota
	MatchPrefix
	MatchSubstring
	MatchToken
	MatchFuzzy
)

func (t MatchType) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	case MatchSubstring:
		return "substring"
	case MatchToken:
		return "token"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// Score is the rank value and tier for one candidate.
type Score struct {
	Value int
	Type  MatchType
}

// Tier constants. Bases keep the tiers disjoint: a fuzzy hit can never
// outrank a substring hit, a substring hit never outranks a prefix hit.
const (
	exactScore          = 1000
	prefixBase          = 850
	prefixMaxPenalty    = 200
	substringBase       = 650
	substringMaxPenalty = 150
	tokenBase           = 500
	tokenMaxBonus       = 120
	fuzzyBase           = 250
)

// Candidate scores candidate against query. Caller supplies both in the same
// case form (lowercased for case-insensitive search) along with the query's
// whitespace tokens. Tiers are tried strictly in order and the first hit
// wins; ok is false when no tier matches.
func Candidate(candidate, query string, tokens []string, fuzzyEnabled bool, minFuzzyScore int) (Score, bool) {
	if candidate == query {
		return Score{exactScore, MatchExact}, true
	}
	if strings.HasPrefix(candidate, query) {
		penalty := min(prefixMaxPenalty, len(candidate)-len(query))
		return Score{prefixBase - penalty, MatchPrefix}, true
	}
	if i := strings.Index(candidate, query); i >= 0 {
		return Score{substringBase - min(substringMaxPenalty, 2*i), MatchSubstring}, true
	}
	if len(tokens) > 1 && containsAll(candidate, tokens) {
		total := 0
		for _, tok := range tokens {
			total += len(tok)
		}
		return Score{tokenBase + min(tokenMaxBonus, 5*total), MatchToken}, true
	}
	if fuzzyEnabled {
		if raw := Subsequence(candidate, query); raw > 0 && raw >= minFuzzyScore {
			return Score{fuzzyBase + raw, MatchFuzzy}, true
		}
	}
	return Score{}, false
}

// Tokenize splits a query on whitespace, discarding empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(query)
}

// containsAll reports whether every token occurs somewhere in candidate.
// Token order and adjacency are not checked.
func containsAll(candidate string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(candidate, tok) {
			return false
		}
	}
	return true
}
