// Package prediction estimates per-product sales trends from daily sales
// history.
//
// The estimator smooths each product's series with a trailing moving
// average, fits a least-squares line, projects the next day and scores how
// much the projection can be trusted. PredictWithSeasonality additionally
// looks for a day-of-week pattern in the raw series.
package prediction

import (
	"math"
	"sort"
)

// Estimator turns observations into predictions. The zero value is not
// useful; use New or Default.
type Estimator struct {
	Params Params
}

// New returns an estimator with the given tuning.
func New(p Params) Estimator {
	return Estimator{Params: p}
}

// Default returns an estimator with DefaultParams.
func Default() Estimator {
	return New(DefaultParams())
}

// Predict runs the default estimator over observations.
func Predict(observations []Observation) []Result {
	return Default().Predict(observations)
}

// PredictWithSeasonality runs the default estimator with the weekly
// seasonality adjustment.
func PredictWithSeasonality(observations []Observation) []Result {
	return Default().PredictWithSeasonality(observations)
}

// productSeries is one product's observations in date order.
type productSeries struct {
	id     int64
	name   string
	points []Observation
}

// groupByProduct partitions observations by product, keeping the order in
// which products were first seen and the first name seen for each.
func groupByProduct(observations []Observation) []*productSeries {
	index := make(map[int64]*productSeries)
	var groups []*productSeries
	for _, o := range observations {
		g, ok := index[o.ProductID]
		if !ok {
			g = &productSeries{id: o.ProductID, name: o.ProductName}
			index[o.ProductID] = g
			groups = append(groups, g)
		}
		g.points = append(g.points, o)
	}
	return groups
}

func (s *productSeries) sortByDate() {
	sort.SliceStable(s.points, func(i, j int) bool {
		return s.points[i].Date.Before(s.points[j].Date)
	})
}

func (s *productSeries) sales() []float64 {
	values := make([]float64, len(s.points))
	for i, o := range s.points {
		values[i] = finite(o.DailySales)
	}
	return values
}

// Predict returns one result per distinct product, sorted by predicted daily
// sales, highest first.
func (e Estimator) Predict(observations []Observation) []Result {
	results := make([]Result, 0)
	for _, series := range groupByProduct(observations) {
		series.sortByDate()
		results = append(results, e.predictSeries(series))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PredictedDailySales > results[j].PredictedDailySales
	})
	return results
}

func (e Estimator) predictSeries(series *productSeries) Result {
	values := series.sales()

	if len(values) < 2 {
		var only float64
		if len(values) == 1 {
			only = math.Max(0, values[0])
		}
		return newResult(series, TrendStable, only, e.Params.InsufficientConfidence, MsgInsufficientHistory)
	}

	smoothed := MovingAverage(values, e.Params.SmoothingWindow)
	slope, intercept := LinearRegression(smoothed)

	predicted := math.Max(0, finite(slope*float64(len(smoothed))+intercept))
	trend := ClassifyTrend(slope, e.Params.TrendThreshold)
	confidence := e.Params.Confidence(smoothed, predicted)
	recommendation := e.Params.Recommendation(trend, confidence)

	return newResult(series, trend, predicted, confidence, recommendation)
}

func newResult(series *productSeries, trend Trend, daily, confidence float64, recommendation string) Result {
	daily = round2(daily)
	return Result{
		ProductID:             series.id,
		ProductName:           series.name,
		CurrentTrend:          trend,
		PredictedDailySales:   daily,
		PredictedWeeklySales:  round2(daily * 7),
		PredictedMonthlySales: round2(daily * 30),
		ConfidenceScore:       round2(clamp01(confidence)),
		Recommendation:        recommendation,
	}
}
