package prediction

// Diagnostics are the intermediate values behind one product's Result.
type Diagnostics struct {
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	Points      int         `json:"points"`
	Smoothed    []float64   `json:"smoothed"`
	Slope       float64     `json:"slope"`
	Intercept   float64     `json:"intercept"`
	Seasonality Seasonality `json:"seasonality"`
}

// Explain returns the smoothed series, fitted line and weekday profile of
// every product, in the order products first appear in observations.
// Products with fewer than two points have no smoothed series or fit.
func (e Estimator) Explain(observations []Observation) []Diagnostics {
	out := make([]Diagnostics, 0)
	for _, series := range groupByProduct(observations) {
		series.sortByDate()
		d := Diagnostics{
			ProductID:   series.id,
			ProductName: series.name,
			Points:      len(series.points),
			Seasonality: e.Params.DetectSeasonality(series.points),
		}
		if values := series.sales(); len(values) >= 2 {
			d.Smoothed = MovingAverage(values, e.Params.SmoothingWindow)
			d.Slope, d.Intercept = LinearRegression(d.Smoothed)
		}
		out = append(out, d)
	}
	return out
}
