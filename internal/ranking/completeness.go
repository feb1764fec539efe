package ranking

// CompletenessScore returns the fraction of the scholarship's custom form
// fields the applicant actually answered. A field counts as completed when
// its mapped value is present and non-empty (null, blank strings, and empty
// lists all count as unanswered). A scholarship with no declared fields
// yields 1.0.
func CompletenessScore(a ApplicantRecord, fields []FormField) float64 {
	return completenessScore(newResponseMap(a), fields)
}

func completenessScore(rm responseMap, fields []FormField) float64 {
	if len(fields) == 0 {
		return 1.0
	}

	completed := 0
	for _, field := range fields {
		value, ok := rm[normalizeLabel(field.Label)]
		if ok && !value.IsEmpty() {
			completed++
		}
	}
	return float64(completed) / float64(len(fields))
}
