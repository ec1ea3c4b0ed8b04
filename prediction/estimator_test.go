package prediction

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) // a Monday

func series(id int64, name string, values ...float64) []Observation {
	obs := make([]Observation, len(values))
	for i, v := range values {
		obs[i] = Observation{
			Date:         day0.AddDate(0, 0, i),
			ProductID:    id,
			ProductName:  name,
			DailySales:   v,
			QuantitySold: int64(v / 10),
		}
	}
	return obs
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{1, 1.5, 2, 3, 4}, MovingAverage([]float64{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, []float64{7}, MovingAverage([]float64{7}, 3))
	assert.Empty(t, MovingAverage(nil, 3))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 0))
}

func TestMovingAverage_LargeValueLeavesWindow(t *testing.T) {
	got := MovingAverage([]float64{1e16, 1, 1, 1, 1, 1}, 3)
	assert.Equal(t, []float64{1, 1, 1}, got[3:])

	got = MovingAverage([]float64{1234567.891, 0.01, 0.01, 0.01, 0.02}, 3)
	assert.InDelta(t, 0.01, got[3], 1e-15)
	assert.Equal(t, (0.01+0.01+0.02)/3, got[4])
}

func TestLinearRegression(t *testing.T) {
	slope, intercept := LinearRegression([]float64{10, 15, 20, 30, 40})
	assert.InDelta(t, 7.5, slope, 1e-9)
	assert.InDelta(t, 8, intercept, 1e-9)

	slope, intercept = LinearRegression([]float64{4})
	assert.Zero(t, slope)
	assert.Equal(t, 4.0, intercept)

	slope, intercept = LinearRegression(nil)
	assert.Zero(t, slope)
	assert.Zero(t, intercept)
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		slope float64
		want  Trend
	}{
		{0.11, TrendIncreasing},
		{0.1, TrendStable},
		{0, TrendStable},
		{-0.1, TrendStable},
		{-0.11, TrendDecreasing},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyTrend(c.slope, 0.1), "slope %v", c.slope)
	}
}

func TestRecommendation(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, MsgLowConfidence, p.Recommendation(TrendIncreasing, 0.39))
	assert.Equal(t, MsgStrongUpward, p.Recommendation(TrendIncreasing, 0.71))
	assert.Equal(t, MsgModerateUpward, p.Recommendation(TrendIncreasing, 0.7))
	assert.Equal(t, MsgStrongDownward, p.Recommendation(TrendDecreasing, 0.9))
	assert.Equal(t, MsgModerateDownward, p.Recommendation(TrendDecreasing, 0.4))
	assert.Equal(t, MsgStable, p.Recommendation(TrendStable, 0.95))
}

func TestConfidence_ZeroMean(t *testing.T) {
	got := DefaultParams().Confidence([]float64{0, 0, 0, 0}, 0)
	assert.InDelta(t, 0.3, got, 1e-9)
	assert.False(t, math.IsNaN(got))
}

func TestPredict_Empty(t *testing.T) {
	got := Predict(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPredict_SinglePoint(t *testing.T) {
	got := Predict(series(7, "Desk Lamp", 42.5))
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, int64(7), r.ProductID)
	assert.Equal(t, "Desk Lamp", r.ProductName)
	assert.Equal(t, TrendStable, r.CurrentTrend)
	assert.Equal(t, 42.5, r.PredictedDailySales)
	assert.Equal(t, 297.5, r.PredictedWeeklySales)
	assert.Equal(t, 1275.0, r.PredictedMonthlySales)
	assert.Equal(t, 0.2, r.ConfidenceScore)
	assert.Equal(t, MsgInsufficientHistory, r.Recommendation)
}

func TestPredict_ConstantSeries(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 100
	}
	got := Predict(series(1, "Keyboard", values...))
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, TrendStable, r.CurrentTrend)
	assert.Equal(t, 100.0, r.PredictedDailySales)
	assert.InDelta(t, 1.0, r.ConfidenceScore, 1e-9)
	assert.Equal(t, MsgStable, r.Recommendation)
}

func TestPredict_IncreasingSeries(t *testing.T) {
	got := Predict(series(1, "Monitor", 10, 20, 30, 40, 50))
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, TrendIncreasing, r.CurrentTrend)
	assert.Equal(t, 45.5, r.PredictedDailySales)
	assert.Equal(t, 318.5, r.PredictedWeeklySales)
	assert.Equal(t, 1365.0, r.PredictedMonthlySales)
	assert.Equal(t, 0.67, r.ConfidenceScore)
	assert.Equal(t, MsgModerateUpward, r.Recommendation)
}

func TestPredict_DecreasingSeries(t *testing.T) {
	got := Predict(series(1, "Mouse", 50, 40, 30, 20, 10))
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, TrendDecreasing, r.CurrentTrend)
	assert.Equal(t, 14.5, r.PredictedDailySales)
	assert.Equal(t, 0.8, r.ConfidenceScore)
	assert.Equal(t, MsgStrongDownward, r.Recommendation)
}

func TestPredict_NegativeProjectionClampedToZero(t *testing.T) {
	got := Predict(series(1, "Cable", 100, 50, 0, 0, 0))
	require.Len(t, got, 1)

	assert.Equal(t, TrendDecreasing, got[0].CurrentTrend)
	assert.Zero(t, got[0].PredictedDailySales)
	assert.Zero(t, got[0].PredictedWeeklySales)
	assert.Zero(t, got[0].PredictedMonthlySales)
}

func TestPredict_TwoPointsUsesShortSeriesConfidence(t *testing.T) {
	got := Predict(series(1, "Webcam", 10, 20))
	require.Len(t, got, 1)

	assert.Equal(t, TrendIncreasing, got[0].CurrentTrend)
	assert.Equal(t, 20.0, got[0].PredictedDailySales)
	assert.Equal(t, 0.3, got[0].ConfidenceScore)
	assert.Equal(t, MsgLowConfidence, got[0].Recommendation)
}

func TestPredict_AllZeroSales(t *testing.T) {
	got := Predict(series(3, "Stapler", 0, 0, 0, 0))
	require.Len(t, got, 1)

	assert.Equal(t, TrendStable, got[0].CurrentTrend)
	assert.Zero(t, got[0].PredictedDailySales)
	assert.Equal(t, 0.3, got[0].ConfidenceScore)
	assert.Equal(t, MsgLowConfidence, got[0].Recommendation)
}

func TestPredict_UnorderedInputIsSortedByDate(t *testing.T) {
	ordered := series(1, "Monitor", 10, 20, 30, 40, 50)
	shuffled := []Observation{ordered[3], ordered[0], ordered[4], ordered[2], ordered[1]}

	assert.Equal(t, Predict(ordered), Predict(shuffled))
}

func TestPredict_MultipleProducts(t *testing.T) {
	obs := append(series(1, "Pen", 10), series(2, "Monitor", 10, 20, 30, 40, 50)...)
	got := Predict(obs)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].ProductID)
	assert.Equal(t, "Monitor", got[0].ProductName)
	assert.Equal(t, 45.5, got[0].PredictedDailySales)

	assert.Equal(t, int64(1), got[1].ProductID)
	assert.Equal(t, "Pen", got[1].ProductName)
	assert.Equal(t, 10.0, got[1].PredictedDailySales)
	assert.Equal(t, 0.2, got[1].ConfidenceScore)
}

func TestPredict_FirstSeenNameWins(t *testing.T) {
	obs := series(1, "Old Name", 10, 20, 30)
	obs[1].ProductName = "New Name"
	obs[2].ProductName = "New Name"

	got := Predict(obs)
	require.Len(t, got, 1)
	assert.Equal(t, "Old Name", got[0].ProductName)
}

func TestPredict_NonFiniteSalesNeverLeak(t *testing.T) {
	obs := series(1, "Glitch", 10, math.NaN(), 30, math.Inf(1), 50)
	for _, r := range Predict(obs) {
		for _, v := range []float64{r.PredictedDailySales, r.PredictedWeeklySales, r.PredictedMonthlySales, r.ConfidenceScore} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite output %v", v)
		}
	}
}

func TestPredict_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var obs []Observation
	for id := int64(1); id <= 25; id++ {
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			obs = append(obs, Observation{
				Date:        day0.AddDate(0, 0, rng.Intn(60)),
				ProductID:   id,
				ProductName: "product",
				DailySales:  rng.Float64() * 500 * float64(rng.Intn(3)),
			})
		}
	}

	for _, results := range [][]Result{Predict(obs), PredictWithSeasonality(obs)} {
		for i, r := range results {
			assert.GreaterOrEqual(t, r.PredictedDailySales, 0.0)
			assert.GreaterOrEqual(t, r.ConfidenceScore, 0.0)
			assert.LessOrEqual(t, r.ConfidenceScore, 1.0)
			assert.Equal(t, round2(r.PredictedDailySales*7), r.PredictedWeeklySales)
			assert.Equal(t, round2(r.PredictedDailySales*30), r.PredictedMonthlySales)
			if i > 0 {
				assert.GreaterOrEqual(t, results[i-1].PredictedDailySales, r.PredictedDailySales)
			}
		}
	}
}

func TestEstimator_CustomParams(t *testing.T) {
	p := DefaultParams()
	p.TrendThreshold = 10

	got := New(p).Predict(series(1, "Monitor", 10, 20, 30, 40, 50))
	require.Len(t, got, 1)
	assert.Equal(t, TrendStable, got[0].CurrentTrend)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.SmoothingWindow = 0
	assert.Error(t, p.Validate())

	p = DefaultParams()
	p.LowConfidence = 0.9
	assert.Error(t, p.Validate())
}
