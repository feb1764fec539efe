package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iskolarhq/iskor/internal/middleware"
	"github.com/iskolarhq/iskor/internal/ranking"
	"github.com/iskolarhq/iskor/internal/tracing"
)

// Request body limits
const (
	// DefaultMaxRequestBytes caps the POST /rankings body size.
	DefaultMaxRequestBytes int64 = 4 << 20 // 4 MiB

	// MaxApplicantsPerRequest caps the batch size of a single ranking call.
	MaxApplicantsPerRequest = 10000
)

// RankRequest represents the request body for ranking a batch of applicants.
type RankRequest struct {
	Applicants  []ranking.ApplicantRecord `json:"applicants"`
	Scholarship *ranking.Scholarship      `json:"scholarship"`
}

// RankResponse represents the response body for a ranking call.
type RankResponse struct {
	Results []ranking.ScoredApplicant `json:"results"`
	Count   int                       `json:"count"`
	Weights ranking.Weights           `json:"weights"`
}

// WeightsResponse represents the response body for GET /rankings/weights.
type WeightsResponse struct {
	Weights ranking.Weights `json:"weights"`
}

// RankHandlers holds dependencies for ranking HTTP handlers.
type RankHandlers struct {
	weights         *ranking.Weights
	metrics         *ranking.Metrics
	maxRequestBytes int64
	workers         int
}

// RankHandlersConfig configures the ranking handlers.
type RankHandlersConfig struct {
	// Weights is the active weight table; nil falls back to the defaults.
	Weights *ranking.Weights

	// Metrics records evaluation counters and timings (optional).
	Metrics *ranking.Metrics

	// MaxRequestBytes caps the request body; zero uses DefaultMaxRequestBytes.
	MaxRequestBytes int64

	// Workers bounds the parallel scoring pool; zero or one scores serially.
	Workers int
}

// NewRankHandlers creates a new RankHandlers instance.
func NewRankHandlers(config RankHandlersConfig) *RankHandlers {
	weights := config.Weights
	if weights == nil {
		weights = ranking.DefaultWeights()
	}
	maxBytes := config.MaxRequestBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}
	return &RankHandlers{
		weights:         weights,
		metrics:         config.Metrics,
		maxRequestBytes: maxBytes,
		workers:         config.Workers,
	}
}

// Rank handles POST /rankings - scores, explains, and ranks a batch of
// applicants against one scholarship.
//
// Malformed envelopes (invalid JSON, missing scholarship, oversized bodies)
// are rejected, but applicant content never is: missing fields, null answers,
// and unparseable grades score low rather than erroring.
func (h *RankHandlers) Rank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)

	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			ctx := middleware.SetErrorCode(r.Context(), ErrCodePayloadTooLarge)
			WriteError(w, ctx, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Request body exceeds size limit")
			return
		}
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeBadRequest)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON in request body")
		return
	}

	if req.Scholarship == nil {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "scholarship is required")
		return
	}
	if len(req.Applicants) > MaxApplicantsPerRequest {
		ctx := middleware.SetErrorCode(r.Context(), ErrCodeValidation)
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "too many applicants in one request")
		return
	}

	_, endSpan := tracing.StartEvaluationSpan(r.Context(), len(req.Applicants), len(req.Scholarship.Criteria))

	start := time.Now()
	results := ranking.RankApplicantsParallel(req.Applicants, *req.Scholarship, h.weights, h.workers)
	endSpan(nil)

	if h.metrics != nil {
		h.metrics.IncRankingsTotal()
		h.metrics.ObserveRankingDuration(time.Since(start).Seconds())
		h.metrics.ObserveBatchSize(float64(len(req.Applicants)))
		h.metrics.SetLastRankingTimestamp(float64(time.Now().Unix()))
		h.metrics.SetLastBatchApplicantCount(float64(len(req.Applicants)))
	}

	writeJSON(w, r.Context(), http.StatusOK, RankResponse{
		Results: results,
		Count:   len(results),
		Weights: *h.weights,
	})
}

// Weights handles GET /rankings/weights - returns the active weight table
// so callers can see which calibration is in effect.
func (h *RankHandlers) Weights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}

	writeJSON(w, r.Context(), http.StatusOK, WeightsResponse{Weights: *h.weights})
}
