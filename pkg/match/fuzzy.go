package match

// Constants for fuzzy subsequence scoring
const (
	fuzzyHitScore       = 8
	fuzzyWordStartBonus = 5
	fuzzyAdjacentBonus  = 4
	fuzzyMaxLenPenalty  = 40
)

// Subsequence greedily matches query characters in order within candidate,
// single pass left to right, and returns the raw score. A query that cannot
// be fully consumed scores 0 and the candidate is excluded. Successful
// matches are floored at 1 after the length penalty.
func Subsequence(candidate, query string) int {
	if query == "" {
		return 0
	}

	cand := []rune(candidate)
	pat := []rune(query)

	score := 0
	pi := 0
	prevHit := -2

	for i := 0; i < len(cand) && pi < len(pat); i++ {
		if cand[i] != pat[pi] {
			continue
		}
		hit := fuzzyHitScore
		if i == 0 || cand[i-1] == ' ' {
			hit += fuzzyWordStartBonus
		}
		if i == prevHit+1 {
			hit += fuzzyAdjacentBonus
		}
		score += hit
		prevHit = i
		pi++
	}

	if pi < len(pat) {
		return 0
	}

	score -= min(fuzzyMaxLenPenalty, len(cand)-len(pat))
	if score < 1 {
		score = 1
	}
	return score
}
