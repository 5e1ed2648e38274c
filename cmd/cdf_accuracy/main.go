package main

import (
	"fmt"
	"math"

	"github.com/jwaldner/optionsim/pricing"
)

// Checks the erf-based normal CDF against published table values and the
// closed-form call against a textbook reference price.
func main() {
	fmt.Println("🎯 Testing CDF Accuracy")
	fmt.Println("=======================")

	table := []struct {
		x, want float64
	}{
		{-3, 0.0013498980316301},
		{-1.96, 0.0249978951482204},
		{-1, 0.1586552539314571},
		{0, 0.5},
		{0.5, 0.6914624612740131},
		{1, 0.8413447460685429},
		{1.96, 0.9750021048517795},
		{3, 0.9986501019683699},
	}

	worst := 0.0
	for _, row := range table {
		got := pricing.NormCDF(row.x)
		diff := math.Abs(got - row.want)
		worst = math.Max(worst, diff)
		fmt.Printf("   Φ(%5.2f) = %.16f  expected %.16f  diff %.2e\n", row.x, got, row.want, diff)
	}
	fmt.Printf("📊 Worst CDF error: %.2e\n", worst)

	// Hull's reference: S=K=100, T=1, r=5%, σ=20%
	price := pricing.PriceCall(100, 100, 1, 0.05, 0.2, 0)
	greeks := pricing.CallGreeksAt(100, 100, 1, 0.05, 0.2, 0)
	fmt.Println()
	fmt.Printf("Price: Expected=10.450584, Got=%.6f, Diff=%.2e\n", price, math.Abs(10.450583572185565-price))
	fmt.Printf("Delta: Expected=0.636831, Got=%.6f\n", greeks.Delta)
	fmt.Printf("Gamma: Expected=0.018762, Got=%.6f\n", greeks.Gamma)

	if worst < 1e-9 {
		fmt.Println("\n✅ CDF accuracy within 1e-9")
	} else {
		fmt.Println("\n❌ CDF accuracy worse than 1e-9")
	}
}
