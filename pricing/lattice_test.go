package pricing

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestParseSide(t *testing.T) {
	cases := []struct {
		in   string
		want Side
	}{
		{"call", Call},
		{"Call", Call},
		{" PUT ", Put},
		{"p", Put},
		{"calls", Call},
	}
	for _, tc := range cases {
		got, err := ParseSide(tc.in)
		if err != nil {
			t.Fatalf("ParseSide(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseSide(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseSide("straddle"); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("expected ErrInvalidSide, got %v", err)
	}
}

func TestPriceAmericanCoercesStepCount(t *testing.T) {
	one := PriceAmerican(100, 100, 0.01, 0, 0.2, 0.5, 1, Call)
	for _, steps := range []int{0, -5} {
		if got := PriceAmerican(100, 100, 0.01, 0, 0.2, 0.5, steps, Call); got != one {
			t.Errorf("steps=%d: got %v, want single-step price %v", steps, got, one)
		}
	}
}

func TestPriceAmericanAtExpiryCollapsesToIntrinsic(t *testing.T) {
	for _, steps := range []int{1, 10, 100, 400} {
		call := PriceAmerican(120, 100, 0.01, 0, 0.2, 0, steps, Call)
		if !almostEqual(call, 20, 0.01) {
			t.Errorf("steps=%d: call at T=0 = %v, want ~20", steps, call)
		}

		put := PriceAmerican(80, 100, 0.01, 0, 0.2, 0, steps, Put)
		if !almostEqual(put, 20, 0.01) {
			t.Errorf("steps=%d: put at T=0 = %v, want ~20", steps, put)
		}
	}
}

func TestPriceAmericanNeverBelowIntrinsic(t *testing.T) {
	for _, S := range []float64{60, 90, 100, 110, 140} {
		for _, side := range []Side{Call, Put} {
			price := PriceAmerican(S, 100, 0.05, 0.03, 0.3, 0.75, 150, side)
			if intrinsic := side.Payoff(S, 100); price < intrinsic {
				t.Errorf("S=%v %v: price %v below intrinsic %v", S, side, price, intrinsic)
			}
		}
	}
}

func TestAmericanCallMatchesEuropeanWithoutDividends(t *testing.T) {
	S, K, r, sigma, T := 100.0, 100.0, 0.05, 0.2, 1.0

	american := PriceAmerican(S, K, r, 0, sigma, T, 200, Call)
	european := PriceCall(S, K, T, r, sigma, 0)

	// Early exercise never pays for a call without dividends, so the lattice
	// only differs from the closed form by discretisation error.
	if american < european-0.02 {
		t.Errorf("american call %v below european %v", american, european)
	}
	if !almostEqual(american, european, 0.02) {
		t.Errorf("american call %v too far from european %v", american, european)
	}
	t.Logf("✅ American call %.6f vs European %.6f", american, european)
}

func TestAmericanPutCarriesEarlyExercisePremium(t *testing.T) {
	S, K, r, sigma, T := 100.0, 100.0, 0.05, 0.2, 1.0

	american := PriceAmerican(S, K, r, 0, sigma, T, 200, Put)
	europeanPut := PriceCall(S, K, T, r, sigma, 0) - S + K*math.Exp(-r*T)

	if american <= europeanPut+0.3 {
		t.Errorf("american put %v should exceed european put %v by the early exercise premium", american, europeanPut)
	}
}

func TestPriceAmericanIsDeterministic(t *testing.T) {
	a := PriceAmerican(105, 100, 0.02, 0.01, 0.25, 0.4, 120, Put)
	b := PriceAmerican(105, 100, 0.02, 0.01, 0.25, 0.4, 120, Put)
	if a != b {
		t.Fatalf("repeated calls differ: %v != %v", a, b)
	}

	g1 := AmericanGreeks(105, 100, 0.02, 0.01, 0.25, 0.4, 120, Put)
	g2 := AmericanGreeks(105, 100, 0.02, 0.01, 0.25, 0.4, 120, Put)
	if g1 != g2 {
		t.Fatalf("repeated greeks differ: %+v != %+v", g1, g2)
	}
}

func TestAmericanGreeks(t *testing.T) {
	call := AmericanGreeks(100, 100, 0.01, 0, 0.2, 1, 100, Call)
	if call.Delta <= 0.5 || call.Delta >= 0.75 {
		t.Errorf("ATM call delta = %v, want in (0.5, 0.75)", call.Delta)
	}
	if call.Gamma < 0 {
		t.Errorf("call gamma = %v, want non-negative", call.Gamma)
	}

	put := AmericanGreeks(100, 100, 0.01, 0, 0.2, 1, 100, Put)
	if put.Delta >= 0 || put.Delta <= -1 {
		t.Errorf("put delta = %v, want in (-1, 0)", put.Delta)
	}
	if put.Gamma < 0 {
		t.Errorf("put gamma = %v, want non-negative", put.Gamma)
	}
}

func TestAmericanGreeksUsesAbsoluteBump(t *testing.T) {
	S, K, r, q, sigma, T, n := 100.0, 95.0, 0.03, 0.0, 0.25, 0.5, 80
	up := PriceAmerican(S+GreeksBump, K, r, q, sigma, T, n, Call)
	down := PriceAmerican(S-GreeksBump, K, r, q, sigma, T, n, Call)
	mid := PriceAmerican(S, K, r, q, sigma, T, n, Call)

	got := AmericanGreeks(S, K, r, q, sigma, T, n, Call)
	if got.Delta != (up-down)/(2*GreeksBump) {
		t.Errorf("delta = %v, want %v", got.Delta, (up-down)/(2*GreeksBump))
	}
	if got.Gamma != (up-2*mid+down)/(GreeksBump*GreeksBump) {
		t.Errorf("gamma = %v, want %v", got.Gamma, (up-2*mid+down)/(GreeksBump*GreeksBump))
	}
}

func TestRiskNeutralProbability(t *testing.T) {
	p := RiskNeutralProbability(0.01, 0, 0.2, 1, 100)
	if !ProbabilityInRange(p) {
		t.Errorf("p = %v, want within [0,1]", p)
	}

	// A large carry over a single coarse step pushes p far above one.
	extreme := RiskNeutralProbability(5, 0, 0.01, 1, 1)
	if ProbabilityInRange(extreme) {
		t.Errorf("p = %v, expected out of range", extreme)
	}

	// The lattice still returns the unclamped arithmetic result.
	price := PriceAmerican(100, 100, 5, 0, 0.01, 1, 1, Call)
	if math.IsNaN(price) {
		t.Errorf("price with out-of-range p should be a number, got NaN")
	}
}
