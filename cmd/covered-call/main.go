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

// Prints a covered call simulation and the expiration-day Greeks
func main() {
	cfg := config.Load()
	d := cfg.Defaults

	spot := flag.Float64("spot", d.Spot, "initial underlying price")
	strike := flag.Float64("strike", d.Strike, "call strike")
	vol := flag.Float64("vol", d.Volatility, "annual volatility")
	rate := flag.Float64("rate", cfg.Rates.FixedRate, "risk-free rate")
	div := flag.Float64("div", d.DividendYield, "dividend yield")
	days := flag.Int("days", d.Days, "days to expiration")
	pct := flag.Float64("pct", d.PctChange, "underlying move by expiry, 0.1 = +10%")
	flag.Parse()

	c := pricing.Contract{Spot: *spot, Strike: *strike, Volatility: *vol, RiskFreeRate: *rate, DividendYield: *div}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("📈 Covered call: S0=%.2f K=%.2f σ=%.4f r=%.4f q=%.4f days=%d move=%s\n",
		c.Spot, c.Strike, c.Volatility, c.RiskFreeRate, c.DividendYield, *days, models.FormatPercentage(*pct).Display)
	fmt.Println(strings.Repeat("=", 52))
	fmt.Printf("%5s %14s %14s %14s\n", "day", "underlying", "call", "covered")

	series := c.SimulateCoveredCall(*days, *pct)
	for i := range series.Days {
		fmt.Printf("%5d %14s %14s %14s\n",
			series.Days[i],
			models.FormatCurrency(series.UnderlyingPrices[i]).Display,
			models.FormatCurrency(series.CallPrices[i]).Display,
			models.FormatCurrency(series.CoveredCallPrices[i]).Display)
	}

	g := models.TerminalGreeks(series)
	fmt.Println()
	fmt.Println("Greeks at expiration")
	fmt.Println(strings.Repeat("-", 20))
	fmt.Printf("Delta: %s\nGamma: %s\nTheta: %s\nVega:  %s\nRho:   %s\n", g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho)
}
