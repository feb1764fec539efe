package ranking

import "testing"

// TestMatchesCriterion tests the fuzzy criterion matcher.
func TestMatchesCriterion(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		criterion string
		want      bool
	}{
		{
			name:      "candidate contains criterion",
			candidate: "Leadership Experience",
			criterion: "Leadership",
			want:      true,
		},
		{
			name:      "criterion contains candidate",
			candidate: "need",
			criterion: "Financial Need",
			want:      true,
		},
		{
			name:      "case insensitive containment",
			candidate: "STEM Scholarship Essay",
			criterion: "stem",
			want:      true,
		},
		{
			name:      "half of significant tokens present",
			candidate: "financial aid documentation is attached",
			criterion: "Financial Need Documentation",
			want:      true,
		},
		{
			name:      "too few significant tokens present",
			candidate: "I volunteer at the library",
			criterion: "Financial Need Documentation",
			want:      false,
		},
		{
			name:      "short connector tokens do not drive a match",
			candidate: "of and the for",
			criterion: "President of the Student Council",
			want:      false,
		},
		{
			name:      "no overlap at all",
			candidate: "Household Income",
			criterion: "Leadership",
			want:      false,
		},
		{
			name:      "blank candidate never matches",
			candidate: "   ",
			criterion: "Leadership",
			want:      false,
		},
		{
			name:      "blank criterion never matches",
			candidate: "Leadership Experience",
			criterion: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesCriterion(tt.candidate, tt.criterion)
			if got != tt.want {
				t.Errorf("MatchesCriterion(%q, %q) = %v, want %v",
					tt.candidate, tt.criterion, got, tt.want)
			}
		})
	}
}

// TestSignificantTokenThreshold verifies the ceil-half rule on the token
// count after short tokens are filtered out.
func TestSignificantTokenThreshold(t *testing.T) {
	// "Community Service Volunteer Work" has 4 significant tokens, so at
	// least 2 must appear in the candidate.
	criterion := "Community Service Volunteer Work"

	if MatchesCriterion("weekly volunteer shifts", criterion) {
		t.Error("one of four significant tokens should not match")
	}
	if !MatchesCriterion("volunteer community organizer", criterion) {
		t.Error("two of four significant tokens should match")
	}
}

// TestCriteriaScore tests the full criteria score over an applicant's
// responses.
func TestCriteriaScore(t *testing.T) {
	tests := []struct {
		name      string
		applicant ApplicantRecord
		criteria  []string
		want      float64
	}{
		{
			name:      "no criteria yields perfect score",
			applicant: ApplicantRecord{ID: "a1"},
			criteria:  nil,
			want:      1.0,
		},
		{
			name: "criterion matched through a label",
			applicant: ApplicantRecord{
				ID: "a2",
				Responses: []FormResponse{
					{Label: "Leadership Experience", Value: StringValue("President of student council")},
				},
			},
			criteria: []string{"Leadership"},
			want:     1.0,
		},
		{
			name: "criterion matched through a value",
			applicant: ApplicantRecord{
				ID: "a3",
				Responses: []FormResponse{
					{Label: "Essay", Value: StringValue("My family faces financial need every semester")},
				},
			},
			criteria: []string{"Financial Need"},
			want:     1.0,
		},
		{
			name: "criterion matched through a list element",
			applicant: ApplicantRecord{
				ID: "a4",
				Responses: []FormResponse{
					{Label: "Activities", Value: ListValue("varsity basketball", "community service club")},
				},
			},
			criteria: []string{"Community Service"},
			want:     1.0,
		},
		{
			name: "half of criteria matched",
			applicant: ApplicantRecord{
				ID: "a5",
				Responses: []FormResponse{
					{Label: "Leadership Experience", Value: StringValue("Captain of the debate team")},
					{Label: "Household Income", Value: StringValue("Below poverty line")},
				},
			},
			criteria: []string{"Leadership", "Academic Excellence Award"},
			want:     0.5,
		},
		{
			name: "blank criteria strings are skipped",
			applicant: ApplicantRecord{
				ID: "a6",
				Responses: []FormResponse{
					{Label: "Leadership", Value: StringValue("yes")},
				},
			},
			criteria: []string{"Leadership", "  "},
			want:     1.0,
		},
		{
			name: "empty answers never satisfy a criterion",
			applicant: ApplicantRecord{
				ID: "a7",
				Responses: []FormResponse{
					{Label: "Essay", Value: StringValue("   ")},
					{Label: "Extra", Value: NullValue()},
				},
			},
			criteria: []string{"Financial Need"},
			want:     0.0,
		},
		{
			name:      "criteria with no responses at all",
			applicant: ApplicantRecord{ID: "a8"},
			criteria:  []string{"Leadership"},
			want:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CriteriaScore(tt.applicant, tt.criteria)
			if got != tt.want {
				t.Errorf("CriteriaScore() = %f, want %f", got, tt.want)
			}
		})
	}
}
