package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/internal/models"
	"github.com/jwaldner/optionsim/pricing"
)

// Prints a day-by-day theta sweep for an American option
func main() {
	cfg := config.Load()
	d := cfg.Defaults

	spot := flag.Float64("spot", d.Spot, "underlying price")
	strike := flag.Float64("strike", d.Strike, "strike price")
	vol := flag.Float64("vol", d.Volatility, "annual volatility")
	rate := flag.Float64("rate", cfg.Rates.FixedRate, "risk-free rate")
	div := flag.Float64("div", d.DividendYield, "dividend yield")
	days := flag.Int("days", d.Days, "days to expiration")
	sideText := flag.String("side", d.Side, "call or put")
	flag.Parse()

	side, err := pricing.ParseSide(*sideText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}
	c := pricing.Contract{Spot: *spot, Strike: *strike, Volatility: *vol, RiskFreeRate: *rate, DividendYield: *div, Side: side}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("⏳ Theta sweep: American %s S=%.2f K=%.2f σ=%.4f r=%.4f q=%.4f days=%d\n",
		side, c.Spot, c.Strike, c.Volatility, c.RiskFreeRate, c.DividendYield, *days)
	fmt.Println(strings.Repeat("=", 64))
	fmt.Printf("%5s %12s %12s %12s %12s\n", "day", "price", "theta", "delta", "gamma")

	series := c.ThetaOverTime(*days)
	for i := range series.TimePoints {
		fmt.Printf("%5d %12s %12s %12s %12s\n",
			series.TimePoints[i],
			models.FormatCurrency(series.Prices[i]).Display,
			models.FormatGreek(series.ThetaValues[i]).Display,
			models.FormatGreek(series.DeltaValues[i]).Display,
			models.FormatGreek(series.GammaValues[i]).Display)
	}
}
