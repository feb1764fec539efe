package ranking

// Response length thresholds for the quality curve. Averages below
// shortAnswerLen score proportionally low; averages between the two
// thresholds map into the mid band; richAnswerLen and beyond approach 1.0.
const (
	shortAnswerLen = 50.0
	richAnswerLen  = 200.0
)

// QualityScore scores the richness of the applicant's free-text answers as
// the average character length across textual responses, mapped through a
// piecewise curve. A string answer contributes its length and counts once;
// a non-empty list contributes the summed length of its elements and counts
// once. Numeric and null answers carry no text and are ignored. An
// applicant with no textual answers scores 0.
func QualityScore(a ApplicantRecord) float64 {
	return qualityScore(newResponseMap(a))
}

func qualityScore(rm responseMap) float64 {
	totalLen := 0
	count := 0
	for _, value := range rm {
		switch value.Kind() {
		case ValueString:
			totalLen += len(value.Text())
			count++
		case ValueList:
			items := value.List()
			if len(items) == 0 {
				continue
			}
			for _, item := range items {
				totalLen += len(item)
			}
			count++
		}
	}

	if count == 0 {
		return 0
	}

	avg := float64(totalLen) / float64(count)
	switch {
	case avg < shortAnswerLen:
		return avg / 100
	case avg < richAnswerLen:
		return 0.5 + (avg-shortAnswerLen)/500
	default:
		score := 0.8 + (avg-richAnswerLen)/1000
		if score > 1.0 {
			return 1.0
		}
		return score
	}
}
