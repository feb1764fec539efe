package ranking

import "testing"

// TestCompletenessScore tests the declared-field completeness fraction.
func TestCompletenessScore(t *testing.T) {
	fields := []FormField{
		{Label: "Essay", Type: "textarea", Required: true},
		{Label: "GPA", Type: "text", Required: true},
		{Label: "Activities", Type: "checkbox", Options: []string{"sports", "music"}},
		{Label: "Household Income", Type: "text"},
	}

	tests := []struct {
		name      string
		responses []FormResponse
		fields    []FormField
		want      float64
	}{
		{
			name:   "no declared fields yields perfect score",
			fields: nil,
			responses: []FormResponse{
				{Label: "Anything", Value: StringValue("value")},
			},
			want: 1.0,
		},
		{
			name:   "all fields answered",
			fields: fields,
			responses: []FormResponse{
				{Label: "Essay", Value: StringValue("my essay")},
				{Label: "GPA", Value: NumberValue(3.5)},
				{Label: "Activities", Value: ListValue("sports")},
				{Label: "Household Income", Value: StringValue("20000")},
			},
			want: 1.0,
		},
		{
			name:   "labels matched case-insensitively",
			fields: []FormField{{Label: "Essay"}},
			responses: []FormResponse{
				{Label: "  ESSAY ", Value: StringValue("done")},
			},
			want: 1.0,
		},
		{
			name:   "blank string counts as unanswered",
			fields: fields,
			responses: []FormResponse{
				{Label: "Essay", Value: StringValue("   ")},
				{Label: "GPA", Value: NumberValue(3.5)},
				{Label: "Activities", Value: ListValue("music")},
				{Label: "Household Income", Value: StringValue("20000")},
			},
			want: 0.75,
		},
		{
			name:   "null and empty list count as unanswered",
			fields: fields,
			responses: []FormResponse{
				{Label: "Essay", Value: StringValue("my essay")},
				{Label: "GPA", Value: NullValue()},
				{Label: "Activities", Value: ListValue()},
				{Label: "Household Income", Value: StringValue("20000")},
			},
			want: 0.5,
		},
		{
			name:   "numeric zero is a legitimate answer",
			fields: []FormField{{Label: "Dependents"}},
			responses: []FormResponse{
				{Label: "Dependents", Value: NumberValue(0)},
			},
			want: 1.0,
		},
		{
			name:      "nothing answered",
			fields:    fields,
			responses: nil,
			want:      0.0,
		},
		{
			name:   "duplicate labels keep the last answer",
			fields: []FormField{{Label: "Essay"}},
			responses: []FormResponse{
				{Label: "Essay", Value: StringValue("first draft")},
				{Label: "Essay", Value: NullValue()},
			},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ApplicantRecord{ID: "a1", Responses: tt.responses}
			got := CompletenessScore(a, tt.fields)
			if got != tt.want {
				t.Errorf("CompletenessScore() = %f, want %f", got, tt.want)
			}
		})
	}
}
