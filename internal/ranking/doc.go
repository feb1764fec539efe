// Package ranking implements the applicant ranking engine: a deterministic,
// explainable multi-factor scoring algorithm that orders scholarship
// applicants by fitness against a scholarship's declared criteria and
// custom application-form schema.
//
// Basic Usage:
//
//	// Load calibration (typically at startup)
//	weights, err := ranking.LoadCalibration("configs/ranking.calibration.json")
//	if err != nil {
//		log.Warn("using default weights", "error", err)
//	}
//
//	scholarship := ranking.Scholarship{
//		Criteria:       []string{"Leadership", "Financial Need"},
//		Classification: "merit_based",
//	}
//	ranked := ranking.RankApplicantsWithWeights(applicants, scholarship, weights)
//	for _, r := range ranked {
//		fmt.Println(r.Rank, r.ID, r.Score)
//	}
//
// Scoring Components:
//
// Each applicant is scored by four independent evaluators — criteria match,
// form completeness, academic performance, and response quality — whose
// raw values all fall in the [0, 1] range. The aggregator combines them
// with calibrated weights, applies discrete bonuses, and caps the result
// at 1.0. Ties in the final ordering share a rank (competition ranking).
//
// The engine is pure: it performs no I/O, never returns an error, and
// resolves malformed input to explicit neutral defaults so that one bad
// applicant record cannot abort ranking for a whole batch.
//
// Calibration:
//
// The calibration system allows deploy-time tuning of component weights via
// JSON configuration files loaded at startup. This enables per-deployment
// scoring policy without code changes (but requires a redeploy or restart
// to pick up new configuration). With no calibration file the canonical
// default weights apply.
package ranking
