package pricing

// CoveredCallSeries is the day-indexed result of a covered call simulation.
// All slices are parallel; day 0 is today and the last entry is expiry.
type CoveredCallSeries struct {
	Days              []int        `json:"days"`
	UnderlyingPrices  []float64    `json:"underlying_prices"`
	CallPrices        []float64    `json:"call_prices"`
	CoveredCallPrices []float64    `json:"covered_call_prices"`
	Greeks            []CallGreeks `json:"greeks"`
}

// Len returns the number of simulated days
func (s CoveredCallSeries) Len() int {
	return len(s.Days)
}

// Terminal returns the Greeks of the last simulated day, false when the series is empty
func (s CoveredCallSeries) Terminal() (CallGreeks, bool) {
	if len(s.Greeks) == 0 {
		return CallGreeks{}, false
	}
	return s.Greeks[len(s.Greeks)-1], true
}

func (s *CoveredCallSeries) append(day int, underlying, call float64, greeks CallGreeks) {
	s.Days = append(s.Days, day)
	s.UnderlyingPrices = append(s.UnderlyingPrices, underlying)
	s.CallPrices = append(s.CallPrices, call)
	s.CoveredCallPrices = append(s.CoveredCallPrices, underlying-call)
	s.Greeks = append(s.Greeks, greeks)
}

// SimulateCoveredCall values a position long one share and short one European
// call while the underlying moves linearly from S0 to S0·(1+pctChange) over the
// given number of days. The call is repriced each day with the remaining time.
func SimulateCoveredCall(S0, K, sigma, r, q float64, days int, pctChange float64) CoveredCallSeries {
	var series CoveredCallSeries
	if days < 0 {
		return series
	}

	if days == 0 {
		call := PriceCall(S0, K, 0, r, sigma, q)
		series.append(0, S0, call, CallGreeksAt(S0, K, 0, r, sigma, q))
		return series
	}

	final := S0 * (1 + pctChange)
	for day := 0; day <= days; day++ {
		price := S0 + (final-S0)*(float64(day)/float64(days))
		remaining := float64(days-day) / DaysPerYear

		call := PriceCall(price, K, remaining, r, sigma, q)
		series.append(day, price, call, CallGreeksAt(price, K, remaining, r, sigma, q))
	}

	return series
}
