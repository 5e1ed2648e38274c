package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/internal/treasury"
)

func main() {
	fmt.Println("🏛️ Checking risk-free rate sources...")
	cfg := config.Load()

	fixed := treasury.FixedRate(cfg.Rates.FixedRate)
	fmt.Printf("✅ Configured fixed rate: %.6f (%.3f%%)\n", float64(fixed), float64(fixed)*100)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := treasury.NewTreasuryClient(treasury.DefaultBaseURL)
	rate, err := client.GetRiskFreeRate(ctx)
	if err != nil {
		fmt.Printf("❌ Error fetching Treasury rate: %v\n", err)
	} else {
		fmt.Printf("✅ Current Treasury Bill rate: %.6f (%.3f%%)\n", rate, rate*100)
	}

	// Served from cache on success, emergency default otherwise
	effective := client.RiskFreeRate(ctx)
	cached, age, ok := client.GetCacheInfo()
	fmt.Printf("✅ Effective rate: %.6f (cached=%.6f, age=%v, initialized=%t)\n", effective, cached, age.Round(time.Second), ok)

	active := treasury.NewRateSource(cfg.Rates)
	fmt.Printf("🎯 Server would use the %q source\n", active.Name())
}
