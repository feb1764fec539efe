package ranking

import "fmt"

// Component display names, used in explanation lines.
const (
	ComponentCriteria     = "Criteria match"
	ComponentCompleteness = "Form completeness"
	ComponentAcademic     = "Academic performance"
	ComponentQuality      = "Response quality"
)

// EvaluationDetails records how an applicant's score was assembled.
type EvaluationDetails struct {
	CriteriaMatches  int      `json:"criteria_matches"`
	CriteriaTotal    int      `json:"criteria_total"`
	FormCompleteness float64  `json:"form_completeness"`
	BonusPoints      float64  `json:"bonus_points"`
	Explanations     []string `json:"explanations"`
}

// ScoredApplicant is the engine's output for one applicant: the original
// record plus the final score in [0, 1], the 1-based competition rank, and
// the evaluation breakdown.
type ScoredApplicant struct {
	ApplicantRecord
	Score   float64           `json:"score"`
	Rank    int               `json:"rank"`
	Details EvaluationDetails `json:"evaluation_details"`
}

// scoreComponent is one entry in the evaluation strategy table: a display
// name, the weight it draws from the active configuration, and the
// evaluator producing its raw [0, 1] value.
type scoreComponent struct {
	name     string
	weight   func(*Weights) float64
	evaluate func(responseMap, Scholarship) float64
}

// scoreComponents is the fixed evaluation order. Explanation lines follow
// this order, with bonus lines appended after.
var scoreComponents = []scoreComponent{
	{
		name:   ComponentCriteria,
		weight: func(w *Weights) float64 { return w.Components.Criteria },
		evaluate: func(rm responseMap, s Scholarship) float64 {
			return criteriaScore(rm, s.Criteria)
		},
	},
	{
		name:   ComponentCompleteness,
		weight: func(w *Weights) float64 { return w.Components.Completeness },
		evaluate: func(rm responseMap, s Scholarship) float64 {
			return completenessScore(rm, s.CustomFormFields)
		},
	},
	{
		name:     ComponentAcademic,
		weight:   func(w *Weights) float64 { return w.Components.Academic },
		evaluate: academicScore,
	},
	{
		name:   ComponentQuality,
		weight: func(w *Weights) float64 { return w.Components.Quality },
		evaluate: func(rm responseMap, s Scholarship) float64 {
			return qualityScore(rm)
		},
	},
}

// scoreApplicant runs every evaluator for one applicant and assembles the
// weighted score, bonuses, and explanation trail. Rank is assigned later by
// the ranker.
func scoreApplicant(a ApplicantRecord, s Scholarship, w *Weights) ScoredApplicant {
	if w == nil {
		w = DefaultWeights()
	}

	rm := newResponseMap(a)
	matched, total := matchCriteria(rm, s.Criteria)

	raw := 0.0
	values := make(map[string]float64, len(scoreComponents))
	explanations := make([]string, 0, len(scoreComponents)+2)
	for _, c := range scoreComponents {
		v := c.evaluate(rm, s)
		values[c.name] = v
		raw += v * c.weight(w)
		explanations = append(explanations, explainComponent(c.name, v))
	}

	completeness := values[ComponentCompleteness]

	bonus := 0.0
	if completeness == 1.0 {
		bonus += w.Bonuses.CompleteForm
		explanations = append(explanations,
			fmt.Sprintf("Complete application form (+%.0f%% bonus)", w.Bonuses.CompleteForm*100))
	}
	if total > 0 && matched == total {
		bonus += w.Bonuses.AllCriteria
		explanations = append(explanations,
			fmt.Sprintf("All criteria matched (+%.0f%% bonus)", w.Bonuses.AllCriteria*100))
	}

	score := raw + bonus
	if score > 1.0 {
		score = 1.0
	}

	return ScoredApplicant{
		ApplicantRecord: a,
		Score:           score,
		Details: EvaluationDetails{
			CriteriaMatches:  matched,
			CriteriaTotal:    total,
			FormCompleteness: completeness,
			BonusPoints:      bonus,
			Explanations:     explanations,
		},
	}
}

// explainComponent renders one explanation line, classifying the raw
// component value before weighting.
func explainComponent(name string, value float64) string {
	var grade string
	switch {
	case value > 0.7:
		grade = "Excellent"
	case value > 0.5:
		grade = "Good"
	case value > 0.3:
		grade = "Fair"
	default:
		grade = "Needs Improvement"
	}
	return fmt.Sprintf("%s: %s (%.0f%%)", name, grade, value*100)
}
