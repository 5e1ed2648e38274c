package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidContract is wrapped by Contract.Validate failures
var ErrInvalidContract = errors.New("invalid contract parameters")

// Contract bundles the market and contract inputs shared by both models.
// Side is ignored by the closed-form call functions.
type Contract struct {
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Volatility    float64 `json:"volatility"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	DividendYield float64 `json:"dividend_yield"`
	Side          Side    `json:"-"`
}

// Validate checks the domain the pricers are defined on: positive spot and
// strike, non-negative volatility and finite rates.
func (c Contract) Validate() error {
	switch {
	case !(c.Spot > 0) || math.IsInf(c.Spot, 0):
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidContract, c.Spot)
	case !(c.Strike > 0) || math.IsInf(c.Strike, 0):
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidContract, c.Strike)
	case !(c.Volatility >= 0) || math.IsInf(c.Volatility, 0):
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidContract, c.Volatility)
	case math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0):
		return fmt.Errorf("%w: risk-free rate must be finite", ErrInvalidContract)
	case math.IsNaN(c.DividendYield) || math.IsInf(c.DividendYield, 0):
		return fmt.Errorf("%w: dividend yield must be finite", ErrInvalidContract)
	}
	return nil
}

// American prices the contract on a lattice with T years to expiry
func (c Contract) American(T float64, steps int) float64 {
	return PriceAmerican(c.Spot, c.Strike, c.RiskFreeRate, c.DividendYield, c.Volatility, T, steps, c.Side)
}

// AmericanGreeks returns the lattice delta and gamma of the contract
func (c Contract) AmericanGreeks(T float64, steps int) LatticeGreeks {
	return AmericanGreeks(c.Spot, c.Strike, c.RiskFreeRate, c.DividendYield, c.Volatility, T, steps, c.Side)
}

// ThetaOverTime runs a decay sweep for the contract
func (c Contract) ThetaOverTime(days int) ThetaSeries {
	return ThetaOverTime(c.Spot, c.Strike, c.RiskFreeRate, c.DividendYield, c.Volatility, days, c.Side)
}

// EvaluateCall values the contract as a European call
func (c Contract) EvaluateCall(T float64) CallValuation {
	return EvaluateCall(c.Spot, c.Strike, T, c.RiskFreeRate, c.Volatility, c.DividendYield)
}

// CallGreeks returns the analytic call Greeks of the contract
func (c Contract) CallGreeks(T float64) CallGreeks {
	return CallGreeksAt(c.Spot, c.Strike, T, c.RiskFreeRate, c.Volatility, c.DividendYield)
}

// BoundaryCallGreeks returns the Greeks that go with a boundary valuation
func (c Contract) BoundaryCallGreeks(T float64) CallGreeks {
	return BoundaryCallGreeks(c.Spot, c.Strike, T, c.RiskFreeRate, c.Volatility, c.DividendYield)
}

// SimulateCoveredCall runs a covered call simulation starting at the contract's spot
func (c Contract) SimulateCoveredCall(days int, pctChange float64) CoveredCallSeries {
	return SimulateCoveredCall(c.Spot, c.Strike, c.Volatility, c.RiskFreeRate, c.DividendYield, days, pctChange)
}
