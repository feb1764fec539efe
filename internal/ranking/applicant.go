package ranking

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind identifies the JSON shape of a form response value.
type ValueKind int

// Value kinds, covering the shapes an application answer can take:
// null/absent, free text, a numeric answer, or a multi-select list.
const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueList
)

// FieldValue holds a single form response value. Application forms are
// scholarship-defined, so a value may arrive as a string, a number, a list
// of strings (multi-select), or null. Unknown shapes decode to null rather
// than erroring, per the engine's no-fail contract.
type FieldValue struct {
	kind ValueKind
	str  string
	num  float64
	list []string
}

// StringValue returns a FieldValue holding a text answer.
func StringValue(s string) FieldValue {
	return FieldValue{kind: ValueString, str: s}
}

// NumberValue returns a FieldValue holding a numeric answer.
func NumberValue(n float64) FieldValue {
	return FieldValue{kind: ValueNumber, num: n}
}

// ListValue returns a FieldValue holding a multi-select answer.
func ListValue(items ...string) FieldValue {
	return FieldValue{kind: ValueList, list: items}
}

// NullValue returns a FieldValue representing a missing answer.
func NullValue() FieldValue {
	return FieldValue{kind: ValueNull}
}

// Kind returns the value's kind.
func (v FieldValue) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether the value is null or absent.
func (v FieldValue) IsNull() bool {
	return v.kind == ValueNull
}

// IsEmpty reports whether the value counts as unanswered: null, a blank
// string, or an empty list. Numeric answers are never empty (zero is a
// legitimate answer).
func (v FieldValue) IsEmpty() bool {
	switch v.kind {
	case ValueString:
		return strings.TrimSpace(v.str) == ""
	case ValueList:
		return len(v.list) == 0
	case ValueNumber:
		return false
	default:
		return true
	}
}

// Text returns the string content for string values, or "" otherwise.
func (v FieldValue) Text() string {
	if v.kind == ValueString {
		return v.str
	}
	return ""
}

// Number returns the numeric content and whether the value is numeric.
func (v FieldValue) Number() (float64, bool) {
	if v.kind == ValueNumber {
		return v.num, true
	}
	return 0, false
}

// List returns the list content for list values, or nil otherwise.
func (v FieldValue) List() []string {
	if v.kind == ValueList {
		return v.list
	}
	return nil
}

// candidates returns the non-blank string forms of the value used for
// criterion matching. Blank strings are excluded so that an empty answer
// can never satisfy a criterion through the containment check.
func (v FieldValue) candidates() []string {
	switch v.kind {
	case ValueString:
		if strings.TrimSpace(v.str) == "" {
			return nil
		}
		return []string{v.str}
	case ValueNumber:
		return []string{formatNumber(v.num)}
	case ValueList:
		out := make([]string, 0, len(v.list))
		for _, item := range v.list {
			if strings.TrimSpace(item) != "" {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

// UnmarshalJSON decodes any of the accepted value shapes. It never returns
// an error: values the engine cannot interpret (objects, malformed tokens)
// decode to null so a single bad field degrades to a neutral score instead
// of failing the whole batch.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = FieldValue{kind: ValueNull}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*v = FieldValue{kind: ValueNull}
			return nil
		}
		*v = FieldValue{kind: ValueString, str: s}
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			*v = FieldValue{kind: ValueNull}
			return nil
		}
		items := make([]string, 0, len(raw))
		for _, elem := range raw {
			var s string
			if err := json.Unmarshal(elem, &s); err == nil {
				items = append(items, s)
				continue
			}
			var n float64
			if err := json.Unmarshal(elem, &n); err == nil {
				items = append(items, formatNumber(n))
			}
			// Nested lists and objects are dropped.
		}
		*v = FieldValue{kind: ValueList, list: items}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			*v = FieldValue{kind: ValueNull}
			return nil
		}
		*v = FieldValue{kind: ValueString, str: strconv.FormatBool(b)}
	case '{':
		*v = FieldValue{kind: ValueNull}
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			*v = FieldValue{kind: ValueNull}
			return nil
		}
		*v = FieldValue{kind: ValueNumber, num: n}
	}
	return nil
}

// MarshalJSON re-emits the value in its original JSON shape.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// formatNumber renders a numeric answer the way it would appear in text.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormResponse is a single answer on an application form.
type FormResponse struct {
	Label string     `json:"label"`
	Value FieldValue `json:"value"`
}

// ApplicantRecord is one scholarship applicant as submitted for ranking:
// an identifier plus the ordered list of form responses. The engine never
// mutates the record; the caller retains ownership.
type ApplicantRecord struct {
	ID        string         `json:"id"`
	Responses []FormResponse `json:"responses"`
}

// responseMap indexes an applicant's responses by normalized label.
// Labels need not be unique on the form; the last occurrence wins.
type responseMap map[string]FieldValue

// newResponseMap builds the label index once per applicant so the criteria
// loop does not re-scan the response list per criterion.
func newResponseMap(a ApplicantRecord) responseMap {
	m := make(responseMap, len(a.Responses))
	for _, r := range a.Responses {
		m[normalizeLabel(r.Label)] = r.Value
	}
	return m
}

// normalizeLabel lowercases and trims a form field label for map keying.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
