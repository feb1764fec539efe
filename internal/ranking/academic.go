package ranking

import (
	"regexp"
	"strconv"
	"strings"
)

// NeutralAcademicScore is the academic component value used when grades are
// not scored: non-merit scholarships, and merit scholarships where no
// usable grade field exists on the application.
const NeutralAcademicScore = 0.5

// Grading scale bounds. GWA runs 1.0 (best) to 5.0 (worst), the inverted
// scale used by Philippine institutions; GPA runs 0.0 to 4.0 with higher
// better. Percentages are recognized above 50.
const (
	gwaBest  = 1.0
	gwaWorst = 5.0
	gpaMax   = 4.0
)

// gradeLabelNeedles mark a response as grade-bearing when any of them
// appears in the lowercased label.
var gradeLabelNeedles = []string{
	"gpa",
	"grade",
	"average",
	"gwa",
	"general weighted average",
}

// numberPattern extracts the leading decimal token from a grade answer,
// tolerating surrounding text like "85%" or "1.75 GWA".
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// AcademicScore normalizes the applicant's academic performance to [0, 1].
// It applies only to merit-based scholarships; all others receive the
// neutral score so the component contributes a flat amount. For merit
// scholarships it scans grade-labelled responses, converts each numeric
// value from its grading scale (percentage, GWA, or GPA), and keeps the
// best normalized grade found. With no usable grade field the neutral
// score applies.
func AcademicScore(a ApplicantRecord, s Scholarship) float64 {
	return academicScore(newResponseMap(a), s)
}

func academicScore(rm responseMap, s Scholarship) float64 {
	if !s.IsMeritBased() {
		return NeutralAcademicScore
	}

	best := 0.0
	found := false
	for label, value := range rm {
		if !isGradeLabel(label) {
			continue
		}
		for _, text := range value.candidates() {
			v, ok := firstNumber(text)
			if !ok {
				continue
			}
			score, ok := normalizeGrade(label, v)
			if !ok {
				continue
			}
			if !found || score > best {
				best = score
				found = true
			}
		}
	}

	if !found {
		return NeutralAcademicScore
	}
	return best
}

// isGradeLabel reports whether a normalized label names a grade field.
func isGradeLabel(label string) bool {
	for _, needle := range gradeLabelNeedles {
		if strings.Contains(label, needle) {
			return true
		}
	}
	return false
}

// firstNumber extracts the first numeric token from a grade answer.
func firstNumber(text string) (float64, bool) {
	token := numberPattern.FindString(text)
	if token == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeGrade converts a raw grade value to [0, 1]. Labels that name
// their scale outright ("GWA", "GPA") pin the interpretation when the value
// lies inside that scale; otherwise the value is classified by range, in
// order: percentage, inverted GWA, GPA. The GWA and GPA ranges overlap for
// values in [1.0, 4.0]; the listed order is the contract for unhinted
// labels. Values outside every scale carry no grade information.
func normalizeGrade(label string, v float64) (float64, bool) {
	if strings.Contains(label, "gwa") || strings.Contains(label, "general weighted average") {
		if v >= gwaBest && v <= gwaWorst {
			return (gwaWorst - v) / (gwaWorst - gwaBest), true
		}
	} else if strings.Contains(label, "gpa") {
		if v >= 0 && v <= gpaMax {
			return v / gpaMax, true
		}
	}

	switch {
	case v > 50 && v <= 100:
		return v / 100, true
	case v >= gwaBest && v <= gwaWorst:
		return (gwaWorst - v) / (gwaWorst - gwaBest), true
	case v >= 0 && v <= gpaMax:
		return v / gpaMax, true
	default:
		return 0, false
	}
}
