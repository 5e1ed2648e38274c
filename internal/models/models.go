package models

import (
	"time"

	"github.com/jwaldner/optionsim/internal/scenario"
	"github.com/jwaldner/optionsim/pricing"
)

// FieldValue represents a field with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // For sorting/plotting: 10.450583
	Display string      `json:"display"` // For UI: "$10.45"
	Type    string      `json:"type"`    // "currency", "greek", "percentage", "text"
}

// PricingRequest is the input panel shared by every pricing endpoint.
// Pointer fields are optional and fall back to configured defaults.
type PricingRequest struct {
	Symbol        string   `json:"symbol,omitempty"` // resolves spot when spot is omitted
	Spot          *float64 `json:"spot,omitempty"`
	Strike        *float64 `json:"strike,omitempty"`
	Volatility    *float64 `json:"volatility,omitempty"`
	RiskFreeRate  *float64 `json:"risk_free_rate,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	Days          *int     `json:"days,omitempty"`
	Expiration    string   `json:"expiration_date,omitempty"` // YYYY-MM-DD, used when days is omitted
	Side          string   `json:"side,omitempty"`            // "call" or "put"
	Steps         *int     `json:"steps,omitempty"`           // lattice steps for single-point pricing
	PctChange     *float64 `json:"pct_change,omitempty"`      // covered call: -1.0 .. 3.0
}

// ContractView echoes the resolved inputs back to the caller
type ContractView struct {
	Symbol        string  `json:"symbol,omitempty"`
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Volatility    float64 `json:"volatility"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	DividendYield float64 `json:"dividend_yield"`
	Side          string  `json:"side,omitempty"`
	Days          int     `json:"days"`
	TimeToExpiry  float64 `json:"time_to_expiry"`
	RateSource    string  `json:"rate_source"`
}

// AmericanPriceResponse is the single-point lattice result
type AmericanPriceResponse struct {
	Success                bool         `json:"success"`
	Contract               ContractView `json:"contract"`
	Steps                  int          `json:"steps"`
	Price                  FieldValue   `json:"price"`
	Delta                  FieldValue   `json:"delta"`
	Gamma                  FieldValue   `json:"gamma"`
	RiskNeutralProbability float64      `json:"risk_neutral_probability"`
	ProbabilityInRange     bool         `json:"probability_in_range"`
}

// ThetaResponse carries a stored theta sweep
type ThetaResponse struct {
	Success            bool                `json:"success"`
	ScenarioID         string              `json:"scenario_id"`
	Contract           ContractView        `json:"contract"`
	Series             pricing.ThetaSeries `json:"series"`
	ProbabilityInRange bool                `json:"probability_in_range"`
}

// EuropeanPriceResponse is the closed-form call result
type EuropeanPriceResponse struct {
	Success    bool                  `json:"success"`
	Contract   ContractView          `json:"contract"`
	Valuation  pricing.CallValuation `json:"valuation"`
	Price      FieldValue            `json:"price"`
	Greeks     pricing.CallGreeks    `json:"greeks"`
	GreeksText GreeksDisplay         `json:"greeks_text"`
}

// CoveredCallResponse carries a stored covered call simulation
type CoveredCallResponse struct {
	Success        bool                      `json:"success"`
	ScenarioID     string                    `json:"scenario_id"`
	Contract       ContractView              `json:"contract"`
	PctChange      float64                   `json:"pct_change"`
	FinalPrice     FieldValue                `json:"final_price"`
	Series         pricing.CoveredCallSeries `json:"series"`
	TerminalGreeks GreeksDisplay             `json:"terminal_greeks"`
}

// GreeksDisplay is the expiration-day Greeks panel, four decimals or "N/A"
type GreeksDisplay struct {
	Delta string `json:"delta"`
	Gamma string `json:"gamma"`
	Theta string `json:"theta"`
	Vega  string `json:"vega"`
	Rho   string `json:"rho"`
}

// ScenarioListResponse lists stored scenarios newest first
type ScenarioListResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Scenarios []scenario.Summary `json:"scenarios"`
}

// ScenarioResponse wraps one stored scenario
type ScenarioResponse struct {
	Success  bool               `json:"success"`
	Scenario *scenario.Scenario `json:"scenario"`
}

// ResetResponse reports how many scenarios a reset removed
type ResetResponse struct {
	Success bool `json:"success"`
	Cleared int  `json:"cleared"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status         string    `json:"status"`
	Store          string    `json:"store"`
	RateSource     string    `json:"rate_source"`
	MarketData     bool      `json:"market_data"`
	NextExpiration string    `json:"next_expiration"`
	Timestamp      time.Time `json:"timestamp"`
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
