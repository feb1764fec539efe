package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iskolarhq/iskor/internal/ranking"
)

const rankRequestBody = `{
	"scholarship": {
		"criteria": ["financial need"],
		"classification": "merit_based",
		"custom_form_fields": [
			{"label": "GPA", "type": "text", "required": true},
			{"label": "Essay", "type": "textarea", "required": true}
		]
	},
	"applicants": [
		{
			"id": "app-weak",
			"responses": [
				{"label": "GPA", "value": null}
			]
		},
		{
			"id": "app-strong",
			"responses": [
				{"label": "GPA", "value": "3.8 GPA"},
				{"label": "Essay", "value": "My family has documented financial need and I work part time to support my siblings while keeping my grades up."}
			]
		}
	]
}`

func newRankHandlers(t *testing.T) *RankHandlers {
	t.Helper()
	return NewRankHandlers(RankHandlersConfig{
		Metrics: ranking.NewMetrics(),
	})
}

func TestRank_Success(t *testing.T) {
	handlers := newRankHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(rankRequestBody))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body: %s", w.Code, w.Body.String())
	}

	var resp RankResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got count=%d len=%d", resp.Count, len(resp.Results))
	}

	if resp.Results[0].ID != "app-strong" {
		t.Errorf("expected app-strong ranked first, got %s", resp.Results[0].ID)
	}
	if resp.Results[0].Rank != 1 || resp.Results[1].Rank != 2 {
		t.Errorf("expected ranks [1, 2], got [%d, %d]", resp.Results[0].Rank, resp.Results[1].Rank)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Errorf("expected descending scores, got %f then %f", resp.Results[0].Score, resp.Results[1].Score)
	}
	if len(resp.Results[0].Details.Explanations) == 0 {
		t.Error("expected explanations on scored applicants")
	}

	if resp.Weights.Components.Criteria != ranking.DefaultCriteriaWeight {
		t.Errorf("expected default criteria weight in response, got %f", resp.Weights.Components.Criteria)
	}
}

func TestRank_EmptyApplicants(t *testing.T) {
	handlers := newRankHandlers(t)

	body := `{"scholarship": {"criteria": [], "custom_form_fields": []}, "applicants": []}`
	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp RankResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected count 0, got %d", resp.Count)
	}
}

// Malformed applicant content is scored, never rejected. Only the request
// envelope itself can produce a 400.
func TestRank_DegenerateApplicantContent(t *testing.T) {
	handlers := newRankHandlers(t)

	body := `{
		"scholarship": {"criteria": ["leadership"], "custom_form_fields": [{"label": "GWA", "type": "text", "required": true}]},
		"applicants": [
			{"id": "a1", "responses": [{"label": "GWA", "value": "not a number"}]},
			{"id": "a2", "responses": [{"label": "", "value": null}]},
			{"id": "a3", "responses": [{"label": "Hobbies", "value": ["chess", "debate"]}]},
			{"id": "a4", "responses": []}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("degenerate applicant content should still score, got %d: %s", w.Code, w.Body.String())
	}

	var resp RankResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 4 {
		t.Errorf("expected all 4 applicants scored, got %d", resp.Count)
	}
	for _, r := range resp.Results {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("applicant %s: score %f out of [0, 1]", r.ID, r.Score)
		}
	}
}

func TestRank_InvalidJSON(t *testing.T) {
	handlers := newRankHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(`{"applicants": [`))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeBadRequest {
		t.Errorf("expected code %s, got %s", ErrCodeBadRequest, resp.Error.Code)
	}
}

func TestRank_MissingScholarship(t *testing.T) {
	handlers := newRankHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(`{"applicants": []}`))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, resp.Error.Code)
	}
}

func TestRank_PayloadTooLarge(t *testing.T) {
	handlers := NewRankHandlers(RankHandlersConfig{MaxRequestBytes: 64})

	req := httptest.NewRequest(http.MethodPost, "/rankings", strings.NewReader(rankRequestBody))
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != ErrCodePayloadTooLarge {
		t.Errorf("expected code %s, got %s", ErrCodePayloadTooLarge, resp.Error.Code)
	}
}

func TestRank_MethodNotAllowed(t *testing.T) {
	handlers := newRankHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/rankings", nil)
	w := httptest.NewRecorder()

	handlers.Rank(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestWeights_ReturnsActiveTable(t *testing.T) {
	custom := ranking.DefaultWeights()
	custom.Components.Criteria = 0.5
	custom.Components.Completeness = 0.1
	handlers := NewRankHandlers(RankHandlersConfig{Weights: custom})

	req := httptest.NewRequest(http.MethodGet, "/rankings/weights", nil)
	w := httptest.NewRecorder()

	handlers.Weights(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp WeightsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Weights.Components.Criteria != 0.5 {
		t.Errorf("expected criteria weight 0.5, got %f", resp.Weights.Components.Criteria)
	}
	if resp.Weights.Bonuses.CompleteForm != ranking.DefaultCompleteFormBonus {
		t.Errorf("expected default complete-form bonus, got %f", resp.Weights.Bonuses.CompleteForm)
	}
}

func TestWeights_MethodNotAllowed(t *testing.T) {
	handlers := newRankHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/rankings/weights", nil)
	w := httptest.NewRecorder()

	handlers.Weights(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
