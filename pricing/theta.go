package pricing

// DaysPerYear converts day offsets into year fractions
const DaysPerYear = 365.0

const (
	minSweepRemaining = 0.0001
	minSweepSteps     = 50
	stepsPerYear      = 100
)

// ThetaSeries is the day-indexed result of a time-decay sweep. All slices are
// parallel and hold days+1 entries, day 0 being today.
type ThetaSeries struct {
	TimePoints  []int     `json:"time_points"`
	ThetaValues []float64 `json:"theta_values"`
	Prices      []float64 `json:"prices"`
	DeltaValues []float64 `json:"delta_values"`
	GammaValues []float64 `json:"gamma_values"`
}

// Len returns the number of days in the series
func (s ThetaSeries) Len() int {
	return len(s.TimePoints)
}

// SweepSteps returns the lattice size used for a given remaining time
func SweepSteps(remaining float64) int {
	n := int(remaining * stepsPerYear)
	if n < minSweepSteps {
		return minSweepSteps
	}
	return n
}

// SweepRemaining returns the year fraction left on a given day of a sweep
// over T years, floored so the final day still has a positive expiry.
func SweepRemaining(T float64, day int) float64 {
	remaining := T - float64(day)/DaysPerYear
	if remaining <= 0 {
		return minSweepRemaining
	}
	return remaining
}

// ThetaOverTime walks an American option from days-to-expiry down to expiry,
// pricing it on a lattice each day. Theta for day 0 is zero; later days use the
// difference against the previous day's price scaled to a per-year rate.
func ThetaOverTime(S, K, r, q, sigma float64, days int, side Side) ThetaSeries {
	if days < 0 {
		return ThetaSeries{}
	}

	T := float64(days) / DaysPerYear
	series := ThetaSeries{
		TimePoints:  make([]int, 0, days+1),
		ThetaValues: make([]float64, 0, days+1),
		Prices:      make([]float64, 0, days+1),
		DeltaValues: make([]float64, 0, days+1),
		GammaValues: make([]float64, 0, days+1),
	}

	for day := 0; day <= days; day++ {
		remaining := SweepRemaining(T, day)
		steps := SweepSteps(remaining)

		price := PriceAmerican(S, K, r, q, sigma, remaining, steps, side)
		greeks := AmericanGreeks(S, K, r, q, sigma, remaining, steps, side)

		theta := 0.0
		if day > 0 {
			theta = (price - series.Prices[day-1]) / (1 / DaysPerYear)
		}

		series.TimePoints = append(series.TimePoints, day)
		series.Prices = append(series.Prices, price)
		series.DeltaValues = append(series.DeltaValues, greeks.Delta)
		series.GammaValues = append(series.GammaValues, greeks.Gamma)
		series.ThetaValues = append(series.ThetaValues, theta)
	}

	return series
}
