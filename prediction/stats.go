package prediction

import "math"

// MovingAverage returns the trailing mean of each point over at most window
// values ending at that point. The result has the same length as data.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	result := make([]float64, len(data))
	for i := range data {
		start := max(0, i-window+1)
		var sum float64
		for _, v := range data[start : i+1] {
			sum += v
		}
		result[i] = sum / float64(i-start+1)
	}
	return result
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares,
// with x the index of each value.
func LinearRegression(data []float64) (slope, intercept float64) {
	n := len(data)
	if n < 2 {
		if n == 1 {
			return 0, data[0]
		}
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range data {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	if den == 0 {
		return 0, sumY / fn
	}
	slope = (fn*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / fn
	return slope, intercept
}

// ClassifyTrend maps a slope onto a Trend using a symmetric dead band.
func ClassifyTrend(slope, threshold float64) Trend {
	switch {
	case slope > threshold:
		return TrendIncreasing
	case slope < -threshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Confidence scores how far a prediction over data can be trusted.
//
// The score blends the coefficient of variation of data (70%) with whether
// the prediction falls within [0.5*min, 2*max] of data (30%). A series with
// a non-positive mean has no meaningful coefficient of variation and scores
// zero on that component.
func (p Params) Confidence(data []float64, prediction float64) float64 {
	if len(data) < 3 {
		return p.ShortSeriesConfidence
	}

	var sum float64
	minValue, maxValue := data[0], data[0]
	for _, v := range data {
		sum += v
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}
	mean := sum / float64(len(data))

	var sq float64
	for _, v := range data {
		sq += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(sq / float64(len(data)))

	variabilityScore := 0.0
	if mean > 0 {
		variabilityScore = math.Max(0, 1-stddev/mean)
	}

	boundsScore := 0.5
	if prediction >= minValue*0.5 && prediction <= maxValue*2 {
		boundsScore = 1
	}

	return clamp01(variabilityScore*0.7 + boundsScore*0.3)
}

// Recommendation picks the advisory text for a trend at a given confidence.
func (p Params) Recommendation(trend Trend, confidence float64) string {
	if confidence < p.LowConfidence {
		return MsgLowConfidence
	}

	switch trend {
	case TrendIncreasing:
		if confidence > p.HighConfidence {
			return MsgStrongUpward
		}
		return MsgModerateUpward
	case TrendDecreasing:
		if confidence > p.HighConfidence {
			return MsgStrongDownward
		}
		return MsgModerateDownward
	default:
		return MsgStable
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}

// finite replaces NaN and infinities with zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
