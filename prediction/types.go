package prediction

import "time"

// Trend is the qualitative direction of a fitted sales line.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Observation is one day of aggregated sales for one product.
type Observation struct {
	Date         time.Time `json:"date"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name"`
	DailySales   float64   `json:"daily_sales"`
	QuantitySold int64     `json:"quantity_sold"`
}

// Result is the per-product forecast returned by the estimator.
type Result struct {
	ProductID             int64   `json:"product_id"`
	ProductName           string  `json:"product_name"`
	CurrentTrend          Trend   `json:"current_trend"`
	PredictedDailySales   float64 `json:"predicted_daily_sales"`
	PredictedWeeklySales  float64 `json:"predicted_weekly_sales"`
	PredictedMonthlySales float64 `json:"predicted_monthly_sales"`
	ConfidenceScore       float64 `json:"confidence_score"`
	Recommendation        string  `json:"recommendation"`
}

// Seasonality reports the periodic patterns found in a product's raw series.
type Seasonality struct {
	HasWeeklyPattern bool `json:"has_weekly_pattern"`
	// HasMonthlyPattern is reserved; monthly detection is not implemented
	// and the flag is always false.
	HasMonthlyPattern bool `json:"has_monthly_pattern"`
	// WeekdayAverages is indexed by time.Weekday; weekdays without
	// observations are zero.
	WeekdayAverages [7]float64 `json:"weekday_averages"`
}

// Recommendation texts.
const (
	MsgInsufficientHistory = "Insufficient historical data for accurate prediction."
	MsgLowConfidence       = "Insufficient data for reliable prediction. Collect more historical data."
	MsgStrongUpward        = "Strong upward trend detected. Consider increasing inventory and marketing investment."
	MsgModerateUpward      = "Moderate upward trend. Monitor closely and prepare for potential demand increase."
	MsgStrongDownward      = "Strong downward trend detected. Review pricing strategy and consider promotions."
	MsgModerateDownward    = "Moderate downward trend. Investigate potential causes and adjust strategy."
	MsgStable              = "Stable sales pattern. Maintain current strategy with regular monitoring."
	MsgWeeklyPattern       = " Weekly pattern detected."
)
