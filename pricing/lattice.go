package pricing

import "math"

const (
	// MinTimeStep is the floor applied to a non-positive lattice step size
	MinTimeStep = 1e-5

	// GreeksBump is the absolute spot shift used for finite-difference delta and gamma
	GreeksBump = 0.5
)

// LatticeGreeks holds the finite-difference sensitivities of an American option
type LatticeGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
}

// latticeStep returns the coerced step count and step size for a tree over T years.
func latticeStep(T float64, steps int) (int, float64) {
	if steps <= 0 {
		steps = 1
	}
	dt := T / float64(steps)
	if dt <= 0 {
		dt = MinTimeStep
	}
	return steps, dt
}

// RiskNeutralProbability returns the up-move probability used by PriceAmerican.
// The value is not clamped and may fall outside [0,1] for extreme inputs.
func RiskNeutralProbability(r, q, sigma, T float64, steps int) float64 {
	_, dt := latticeStep(T, steps)
	up := math.Exp(sigma * math.Sqrt(dt))
	down := 1 / up
	return (math.Exp((r-q)*dt) - down) / (up - down)
}

// ProbabilityInRange reports whether p is a usable probability
func ProbabilityInRange(p float64) bool {
	return p >= 0 && p <= 1
}

// PriceAmerican prices an American option on a Cox-Ross-Rubinstein binomial tree.
//
// The tree has steps layers over T years (steps <= 0 is treated as 1). Every
// interior node takes the larger of its discounted continuation value and the
// immediate exercise payoff.
func PriceAmerican(S, K, r, q, sigma, T float64, steps int, side Side) float64 {
	n, dt := latticeStep(T, steps)

	up := math.Exp(sigma * math.Sqrt(dt))
	down := 1 / up
	p := (math.Exp((r-q)*dt) - down) / (up - down)
	discount := math.Exp(r * dt)

	values := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		spot := S * math.Pow(up, float64(j)) * math.Pow(down, float64(n-j))
		values[j] = side.Payoff(spot, K)
	}

	for i := n - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			spot := S * math.Pow(up, float64(j)) * math.Pow(down, float64(i-j))
			value := (p*values[j+1] + (1-p)*values[j]) / discount
			if exercise := side.Payoff(spot, K); exercise > value {
				value = exercise
			}
			values[j] = value
		}
	}

	return values[0]
}

// AmericanGreeks estimates delta and gamma by bumping spot by GreeksBump in both
// directions. The bump is absolute, so the estimate degrades for spots near 0.5.
func AmericanGreeks(S, K, r, q, sigma, T float64, steps int, side Side) LatticeGreeks {
	h := GreeksBump
	priceUp := PriceAmerican(S+h, K, r, q, sigma, T, steps, side)
	priceDown := PriceAmerican(S-h, K, r, q, sigma, T, steps, side)
	priceMid := PriceAmerican(S, K, r, q, sigma, T, steps, side)

	return LatticeGreeks{
		Delta: (priceUp - priceDown) / (2 * h),
		Gamma: (priceUp - 2*priceMid + priceDown) / (h * h),
	}
}
