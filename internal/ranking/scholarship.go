package ranking

import "strings"

// ClassificationMeritBased is the scholarship classification that enables
// academic grade scoring. Any other classification value is treated as
// non-merit and receives a flat neutral academic component.
const ClassificationMeritBased = "merit_based"

// FormField is one scholarship-defined application question.
type FormField struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// Scholarship describes what a scholarship asks of its applicants: a list
// of free-text eligibility criteria (unordered, may be empty), the custom
// form fields applicants answer, and an optional classification tag.
type Scholarship struct {
	Criteria         []string    `json:"criteria"`
	CustomFormFields []FormField `json:"custom_form_fields"`
	Classification   string      `json:"classification,omitempty"`
}

// IsMeritBased reports whether academic performance should be scored from
// the applicant's grade fields rather than held at the neutral default.
func (s Scholarship) IsMeritBased() bool {
	return strings.EqualFold(strings.TrimSpace(s.Classification), ClassificationMeritBased)
}
