package prediction

// DetectSeasonality looks for a day-of-week pattern in raw observations.
//
// Sales are averaged per weekday over the weekdays that have at least one
// observation. A weekly pattern exists when the spread between the busiest
// weekday and the quietest weekday that sold anything exceeds the
// seasonality threshold, relative to the busiest.
func (p Params) DetectSeasonality(observations []Observation) Seasonality {
	var sums [7]float64
	var counts [7]int
	for _, o := range observations {
		day := o.Date.Weekday()
		sums[day] += finite(o.DailySales)
		counts[day]++
	}

	var s Seasonality
	var maxAvg, minNonZero float64
	for day := range sums {
		if counts[day] == 0 {
			continue
		}
		avg := sums[day] / float64(counts[day])
		s.WeekdayAverages[day] = avg
		maxAvg = max(maxAvg, avg)
		if avg > 0 && (minNonZero == 0 || avg < minNonZero) {
			minNonZero = avg
		}
	}

	if maxAvg > 0 {
		s.HasWeeklyPattern = (maxAvg-minNonZero)/maxAvg > p.SeasonalityThreshold
	}
	return s
}

// AdjustForSeasonality raises the confidence of, and annotates, every result
// whose product shows a weekly pattern in observations. The input slice is
// not modified.
func (e Estimator) AdjustForSeasonality(results []Result, observations []Observation) []Result {
	byProduct := make(map[int64][]Observation)
	for _, o := range observations {
		byProduct[o.ProductID] = append(byProduct[o.ProductID], o)
	}

	adjusted := make([]Result, len(results))
	for i, r := range results {
		if e.Params.DetectSeasonality(byProduct[r.ProductID]).HasWeeklyPattern {
			r.ConfidenceScore = round2(clamp01(r.ConfidenceScore + e.Params.SeasonalityBoost))
			r.Recommendation += MsgWeeklyPattern
		}
		adjusted[i] = r
	}
	return adjusted
}

// PredictWithSeasonality is Predict followed by AdjustForSeasonality.
func (e Estimator) PredictWithSeasonality(observations []Observation) []Result {
	return e.AdjustForSeasonality(e.Predict(observations), observations)
}
