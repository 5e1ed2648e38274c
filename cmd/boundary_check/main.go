package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwaldner/optionsim/pricing"
)

// Compares the raw closed form with the explicit boundary valuation when
// volatility is zero or the contract is at expiry.
func main() {
	fmt.Println("🔍 Zero Volatility Boundary Check")
	fmt.Println("=================================")

	cases := []struct {
		name          string
		S, K, T, r, q float64
		sigma         float64
	}{
		{"ITM, zero vol", 110, 100, 1, 0.05, 0, 0},
		{"OTM, zero vol", 90, 100, 1, 0.05, 0, 0},
		{"ATM, zero vol, zero rates", 100, 100, 0.5, 0, 0, 0},
		{"ITM with dividends, zero vol", 120, 100, 0.25, 0.03, 0.02, 0},
		{"at expiry", 105, 100, 0, 0.05, 0, 0.2},
		{"normal case", 100, 100, 1, 0.05, 0, 0.2},
	}

	for _, c := range cases {
		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Printf("%s: S=%.2f K=%.2f T=%.4f r=%.4f q=%.4f σ=%.4f\n", c.name, c.S, c.K, c.T, c.r, c.q, c.sigma)
		fmt.Println(strings.Repeat("=", 50))

		raw := pricing.PriceCall(c.S, c.K, c.T, c.r, c.sigma, c.q)
		v := pricing.EvaluateCall(c.S, c.K, c.T, c.r, c.sigma, c.q)
		forward := math.Max(c.S*math.Exp(-c.q*c.T)-c.K*math.Exp(-c.r*c.T), 0)

		status := "✅"
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			status = "❌ non-finite"
		}
		fmt.Printf("Closed form:        %.6f %s\n", raw, status)
		fmt.Printf("Evaluated (%s): %.6f\n", v.Kind, v.Price)
		fmt.Printf("Discounted forward: %.6f\n", forward)
	}

	fmt.Println("\n🎯 Boundary valuations stay finite where the closed form does not.")
}
