package prediction

import "fmt"

// Params holds the tunable constants of the estimator.
type Params struct {
	// SmoothingWindow is the trailing moving-average span.
	SmoothingWindow int `json:"smoothing_window"`
	// TrendThreshold is the absolute slope above which a series is
	// increasing or decreasing.
	TrendThreshold float64 `json:"trend_threshold"`
	// LowConfidence is the score under which the generic advisory is used.
	LowConfidence float64 `json:"low_confidence"`
	// HighConfidence separates "strong" from "moderate" recommendations.
	HighConfidence float64 `json:"high_confidence"`
	// SeasonalityThreshold is the relative weekday spread that counts as a
	// weekly pattern.
	SeasonalityThreshold float64 `json:"seasonality_threshold"`
	// SeasonalityBoost is added to the confidence when a pattern is found.
	SeasonalityBoost float64 `json:"seasonality_boost"`
	// InsufficientConfidence is reported for products with a single point.
	InsufficientConfidence float64 `json:"insufficient_confidence"`
	// ShortSeriesConfidence is reported when fewer than three smoothed
	// points exist.
	ShortSeriesConfidence float64 `json:"short_series_confidence"`
}

// DefaultParams returns the production tuning.
func DefaultParams() Params {
	return Params{
		SmoothingWindow:        3,
		TrendThreshold:         0.1,
		LowConfidence:          0.4,
		HighConfidence:         0.7,
		SeasonalityThreshold:   0.2,
		SeasonalityBoost:       0.1,
		InsufficientConfidence: 0.2,
		ShortSeriesConfidence:  0.3,
	}
}

// Validate reports parameters the estimator cannot work with.
func (p Params) Validate() error {
	if p.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing window must be at least 1, got %d", p.SmoothingWindow)
	}
	if p.TrendThreshold < 0 {
		return fmt.Errorf("trend threshold must not be negative, got %v", p.TrendThreshold)
	}
	if p.LowConfidence < 0 || p.LowConfidence > 1 || p.HighConfidence < 0 || p.HighConfidence > 1 {
		return fmt.Errorf("confidence thresholds must lie in [0,1], got %v and %v", p.LowConfidence, p.HighConfidence)
	}
	if p.LowConfidence > p.HighConfidence {
		return fmt.Errorf("low confidence %v exceeds high confidence %v", p.LowConfidence, p.HighConfidence)
	}
	if p.SeasonalityThreshold < 0 {
		return fmt.Errorf("seasonality threshold must not be negative, got %v", p.SeasonalityThreshold)
	}
	return nil
}
