package ranking

import (
	"math"
	"strings"
)

// significantTokenLen is the minimum token length considered meaningful for
// partial criterion matching. Short connector words ("of", "for", "and")
// fall below it and never drive a match on their own.
const significantTokenLen = 3

// MatchesCriterion reports whether a candidate string satisfies a single
// free-text criterion. Matching is case-insensitive: the candidate matches
// if either string contains the other, or if at least half (rounded up) of
// the criterion's significant tokens appear as substrings of the candidate.
// Blank candidates and blank criteria never match.
func MatchesCriterion(candidate, criterion string) bool {
	cand := strings.ToLower(strings.TrimSpace(candidate))
	crit := strings.ToLower(strings.TrimSpace(criterion))
	if cand == "" || crit == "" {
		return false
	}

	if strings.Contains(cand, crit) || strings.Contains(crit, cand) {
		return true
	}

	tokens := significantTokens(crit)
	if len(tokens) == 0 {
		return false
	}
	need := int(math.Ceil(float64(len(tokens)) * 0.5))

	hits := 0
	for _, tok := range tokens {
		if strings.Contains(cand, tok) {
			hits++
		}
	}
	return hits >= need
}

// significantTokens splits a criterion on whitespace and keeps the tokens
// long enough to carry meaning.
func significantTokens(criterion string) []string {
	fields := strings.Fields(criterion)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > significantTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// CriteriaScore returns the fraction of the scholarship's criteria matched
// by the applicant's responses. A scholarship with no criteria yields 1.0.
func CriteriaScore(a ApplicantRecord, criteria []string) float64 {
	return criteriaScore(newResponseMap(a), criteria)
}

func criteriaScore(rm responseMap, criteria []string) float64 {
	matched, total := matchCriteria(rm, criteria)
	if total == 0 {
		return 1.0
	}
	return float64(matched) / float64(total)
}

// matchCriteria counts how many criteria are satisfied by at least one
// response. Both the label and the value of every response are tested.
// Blank criterion strings are not real criteria and are skipped.
func matchCriteria(rm responseMap, criteria []string) (matched, total int) {
	for _, criterion := range criteria {
		if strings.TrimSpace(criterion) == "" {
			continue
		}
		total++
		if rm.matchesAny(criterion) {
			matched++
		}
	}
	return matched, total
}

// matchesAny reports whether any response label or value satisfies the
// criterion.
func (rm responseMap) matchesAny(criterion string) bool {
	for label, value := range rm {
		if MatchesCriterion(label, criterion) {
			return true
		}
		for _, cand := range value.candidates() {
			if MatchesCriterion(cand, criterion) {
				return true
			}
		}
	}
	return false
}
