package ranking

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Canonical scoring policy. The component weights sum to 1.0; the bonuses
// are discrete additions applied after the weighted sum.
const (
	DefaultCriteriaWeight     = 0.40
	DefaultCompletenessWeight = 0.20
	DefaultAcademicWeight     = 0.25
	DefaultQualityWeight      = 0.15
	DefaultCompleteFormBonus  = 0.05
	DefaultAllCriteriaBonus   = 0.05
)

// ComponentWeights defines the weighted contribution of each evaluator to
// the final score.
type ComponentWeights struct {
	Criteria     float64 `json:"criteria"`     // Weight for criteria match (default: 0.40)
	Completeness float64 `json:"completeness"` // Weight for form completeness (default: 0.20)
	Academic     float64 `json:"academic"`     // Weight for academic performance (default: 0.25)
	Quality      float64 `json:"quality"`      // Weight for response quality (default: 0.15)
}

// BonusWeights defines the discrete score additions granted on top of the
// weighted component sum.
type BonusWeights struct {
	CompleteForm float64 `json:"complete_form"` // Bonus for a fully answered form (default: 0.05)
	AllCriteria  float64 `json:"all_criteria"`  // Bonus for matching every criterion (default: 0.05)
}

// Weights holds the full scoring weight configuration.
type Weights struct {
	Components ComponentWeights `json:"components"` // Evaluator weights
	Bonuses    BonusWeights     `json:"bonuses"`    // Bonus additions
}

// CalibrationConfig represents the JSON structure of the calibration file.
type CalibrationConfig struct {
	Version string  `json:"version"` // Config version for future compatibility
	Weights Weights `json:"weights"` // Weight configurations
}

// DefaultWeights returns the canonical scoring weight configuration.
//
// Formula: score = (criteria * 0.40) + (completeness * 0.20) +
// (academic * 0.25) + (quality * 0.15), plus 0.05 for a fully answered
// form and 0.05 for matching every declared criterion, capped at 1.0.
//
// Criteria match carries the largest weight because it measures fitness
// against what the scholarship explicitly asks for; academic performance
// comes second and only differentiates merit-based scholarships.
func DefaultWeights() *Weights {
	return &Weights{
		Components: ComponentWeights{
			Criteria:     DefaultCriteriaWeight,
			Completeness: DefaultCompletenessWeight,
			Academic:     DefaultAcademicWeight,
			Quality:      DefaultQualityWeight,
		},
		Bonuses: BonusWeights{
			CompleteForm: DefaultCompleteFormBonus,
			AllCriteria:  DefaultAllCriteriaBonus,
		},
	}
}

// LoadCalibration loads scoring weights from a JSON calibration file.
// If the file doesn't exist or can't be read, returns default weights with
// an error. Partial configurations are merged with defaults for graceful
// degradation.
//
// Parameters:
//   - filePath: Path to the calibration JSON file
//
// Returns the loaded weights and any error encountered.
// On error, returns default weights to ensure graceful degradation.
func LoadCalibration(filePath string) (*Weights, error) {
	// Return defaults if no file path provided
	if filePath == "" {
		return DefaultWeights(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to read calibration file: %w", err)
	}

	var config CalibrationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to parse calibration file: %w", err)
	}

	// Merge loaded weights with defaults to handle partial configurations
	defaults := DefaultWeights()
	merged := MergeCalibration(defaults, &config.Weights)
	logCalibrationOverrides(defaults, merged)

	return merged, nil
}

// MergeCalibration merges override weights with base weights.
// Only non-zero values from the override are applied, which allows partial
// overrides in the calibration file.
//
// Parameters:
//   - base: The base weights to start from (typically defaults)
//   - override: The override weights to merge in
//
// Returns a new Weights struct with merged values.
func MergeCalibration(base *Weights, override *Weights) *Weights {
	// Guard against nil base to avoid panics; fall back to defaults.
	if base == nil {
		return DefaultWeights()
	}

	// If there is no override provided, return a copy of the base.
	if override == nil {
		result := *base
		return &result
	}

	result := *base // Copy base

	if override.Components.Criteria != 0 {
		result.Components.Criteria = override.Components.Criteria
	}
	if override.Components.Completeness != 0 {
		result.Components.Completeness = override.Components.Completeness
	}
	if override.Components.Academic != 0 {
		result.Components.Academic = override.Components.Academic
	}
	if override.Components.Quality != 0 {
		result.Components.Quality = override.Components.Quality
	}

	if override.Bonuses.CompleteForm != 0 {
		result.Bonuses.CompleteForm = override.Bonuses.CompleteForm
	}
	if override.Bonuses.AllCriteria != 0 {
		result.Bonuses.AllCriteria = override.Bonuses.AllCriteria
	}

	return &result
}

// logCalibrationOverrides logs which weights were overridden from defaults.
func logCalibrationOverrides(defaults *Weights, loaded *Weights) {
	var overrides []string

	if loaded.Components.Criteria != defaults.Components.Criteria {
		overrides = append(overrides, fmt.Sprintf("components.criteria: %.2f -> %.2f",
			defaults.Components.Criteria, loaded.Components.Criteria))
	}
	if loaded.Components.Completeness != defaults.Components.Completeness {
		overrides = append(overrides, fmt.Sprintf("components.completeness: %.2f -> %.2f",
			defaults.Components.Completeness, loaded.Components.Completeness))
	}
	if loaded.Components.Academic != defaults.Components.Academic {
		overrides = append(overrides, fmt.Sprintf("components.academic: %.2f -> %.2f",
			defaults.Components.Academic, loaded.Components.Academic))
	}
	if loaded.Components.Quality != defaults.Components.Quality {
		overrides = append(overrides, fmt.Sprintf("components.quality: %.2f -> %.2f",
			defaults.Components.Quality, loaded.Components.Quality))
	}

	if loaded.Bonuses.CompleteForm != defaults.Bonuses.CompleteForm {
		overrides = append(overrides, fmt.Sprintf("bonuses.complete_form: %.2f -> %.2f",
			defaults.Bonuses.CompleteForm, loaded.Bonuses.CompleteForm))
	}
	if loaded.Bonuses.AllCriteria != defaults.Bonuses.AllCriteria {
		overrides = append(overrides, fmt.Sprintf("bonuses.all_criteria: %.2f -> %.2f",
			defaults.Bonuses.AllCriteria, loaded.Bonuses.AllCriteria))
	}

	if len(overrides) > 0 {
		slog.Info("loaded ranking calibration with overrides",
			"overrides", overrides)
	} else {
		slog.Info("loaded ranking calibration (using all defaults)")
	}
}
