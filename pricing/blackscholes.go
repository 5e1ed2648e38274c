package pricing

import "math"

// BoundaryEpsilon is the smallest total volatility σ·√T that EvaluateCall
// prices with the closed form. Below it the call is valued at its boundary.
const BoundaryEpsilon = 1e-12

// CallGreeks holds the analytic Black-Scholes-Merton sensitivities of a call.
// Theta is per year.
type CallGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// NormCDF is the standard normal cumulative distribution function
func NormCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// NormPDF is the standard normal density
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

func d1d2(S, K, T, r, sigma, q float64) (float64, float64) {
	volSqrtT := sigma * math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / volSqrtT
	return d1, d1 - volSqrtT
}

// PriceCall prices a European call with dividend yield q.
//
// At or past expiry the intrinsic value is returned. Zero volatility with time
// remaining is not special-cased: the formula divides by zero and the NaN or
// Inf it produces is returned as is. Use EvaluateCall for a boundary-aware price.
func PriceCall(S, K, T, r, sigma, q float64) float64 {
	if T <= 0 {
		return math.Max(S-K, 0)
	}
	d1, d2 := d1d2(S, K, T, r, sigma, q)
	return S*math.Exp(-q*T)*NormCDF(d1) - K*math.Exp(-r*T)*NormCDF(d2)
}

// CallGreeksAt returns the analytic Greeks of a European call. At expiry delta
// is 1 for an in-the-money call and 0 otherwise, and every other Greek is 0.
func CallGreeksAt(S, K, T, r, sigma, q float64) CallGreeks {
	if T <= 0 {
		g := CallGreeks{}
		if S-K > 0 {
			g.Delta = 1.0
		}
		return g
	}

	d1, d2 := d1d2(S, K, T, r, sigma, q)
	sqrtT := math.Sqrt(T)
	carry := math.Exp(-q * T)
	discount := math.Exp(-r * T)
	pdf := NormPDF(d1)

	return CallGreeks{
		Delta: carry * NormCDF(d1),
		Gamma: carry * pdf / (S * sigma * sqrtT),
		Theta: -(S*carry*pdf*sigma)/(2*sqrtT) -
			r*K*discount*NormCDF(d2) +
			q*S*carry*NormCDF(d1),
		Vega: S * carry * sqrtT * pdf,
		Rho:  K * T * discount * NormCDF(d2),
	}
}

// ValuationKind tells how a CallValuation was produced
type ValuationKind string

const (
	ValuationFormula  ValuationKind = "formula"
	ValuationBoundary ValuationKind = "boundary"
)

// CallValuation is a European call price tagged with the branch that produced it
type CallValuation struct {
	Kind  ValuationKind `json:"kind"`
	Price float64       `json:"price"`
}

// IsBoundary reports whether the price came from the domain boundary
func (v CallValuation) IsBoundary() bool {
	return v.Kind == ValuationBoundary
}

// EvaluateCall prices a European call, checking σ·√T against BoundaryEpsilon
// before entering the closed form. Degenerate inputs are valued at the
// discounted forward intrinsic max(S·e^(−qT) − K·e^(−rT), 0), which is
// max(S−K, 0) at expiry.
func EvaluateCall(S, K, T, r, sigma, q float64) CallValuation {
	if T <= 0 {
		return CallValuation{Kind: ValuationBoundary, Price: math.Max(S-K, 0)}
	}
	if sigma*math.Sqrt(T) < BoundaryEpsilon {
		forward := S*math.Exp(-q*T) - K*math.Exp(-r*T)
		return CallValuation{Kind: ValuationBoundary, Price: math.Max(forward, 0)}
	}
	return CallValuation{Kind: ValuationFormula, Price: PriceCall(S, K, T, r, sigma, q)}
}

// BoundaryCallGreeks returns the Greeks that match EvaluateCall's boundary
// price: the σ→0 limit of the closed form. An in-the-money forward has delta
// e^(−qT), no gamma or vega, and the carry terms of theta and rho. A forward
// at or below the strike is worthless and has no sensitivities.
func BoundaryCallGreeks(S, K, T, r, sigma, q float64) CallGreeks {
	if T <= 0 {
		return CallGreeksAt(S, K, T, r, sigma, q)
	}
	carry := math.Exp(-q * T)
	discount := math.Exp(-r * T)
	if S*carry-K*discount <= 0 {
		return CallGreeks{}
	}
	return CallGreeks{
		Delta: carry,
		Theta: -r*K*discount + q*S*carry,
		Rho:   K * T * discount,
	}
}
