package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/jwaldner/optionsim/internal/alpaca"
	"github.com/jwaldner/optionsim/internal/logger"
	"github.com/jwaldner/optionsim/internal/models"
	"github.com/jwaldner/optionsim/internal/utils"
	"github.com/jwaldner/optionsim/pricing"
)

// ErrInvalidInput marks request values outside the accepted ranges
var ErrInvalidInput = errors.New("invalid input")

const (
	maxDays      = 365
	minPctChange = -1.0
	maxPctChange = 3.0
	maxSteps     = 5000
)

// resolvedInputs is a request after defaults, rate and spot lookup are applied
type resolvedInputs struct {
	contract   pricing.Contract
	symbol     string
	days       int
	steps      int
	pctChange  float64
	rateSource string
}

func (in resolvedInputs) timeToExpiry() float64 {
	return float64(in.days) / pricing.DaysPerYear
}

func (in resolvedInputs) view(withSide bool) models.ContractView {
	v := models.ContractView{
		Symbol:        in.symbol,
		Spot:          in.contract.Spot,
		Strike:        in.contract.Strike,
		Volatility:    in.contract.Volatility,
		RiskFreeRate:  in.contract.RiskFreeRate,
		DividendYield: in.contract.DividendYield,
		Days:          in.days,
		TimeToExpiry:  in.timeToExpiry(),
		RateSource:    in.rateSource,
	}
	if withSide {
		v.Side = in.contract.Side.String()
	}
	return v
}

// decodeRequest reads the JSON body. An empty body means "all defaults".
func decodeRequest(r *http.Request) (models.PricingRequest, error) {
	var req models.PricingRequest
	if r.Body == nil {
		return req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("%w: malformed JSON body: %v", ErrInvalidInput, err)
	}
	return req, nil
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// resolve applies configured defaults, the rate source and the spot source
// to a request, then validates the result.
func (h *PricingHandler) resolve(r *http.Request, req models.PricingRequest) (resolvedInputs, error) {
	d := h.config.Defaults
	in := resolvedInputs{
		symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		days:      intOr(req.Days, d.Days),
		steps:     intOr(req.Steps, d.LatticeSteps),
		pctChange: floatOr(req.PctChange, d.PctChange),
	}

	if req.Days == nil && req.Expiration != "" {
		days, err := utils.DaysUntil(req.Expiration, h.now())
		if err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.days = days
	}

	sideText := req.Side
	if sideText == "" {
		sideText = d.Side
	}
	side, err := pricing.ParseSide(sideText)
	if err != nil {
		return in, err
	}

	in.contract = pricing.Contract{
		Strike:        floatOr(req.Strike, d.Strike),
		Volatility:    floatOr(req.Volatility, d.Volatility),
		DividendYield: floatOr(req.DividendYield, d.DividendYield),
		Side:          side,
	}

	if req.RiskFreeRate != nil {
		in.contract.RiskFreeRate = *req.RiskFreeRate
		in.rateSource = "request"
	} else {
		in.contract.RiskFreeRate = h.rates.RiskFreeRate(r.Context())
		in.rateSource = h.rates.Name()
	}

	switch {
	case req.Spot != nil:
		in.contract.Spot = *req.Spot
	case in.symbol != "":
		spot, err := h.spot.SpotPrice(r.Context(), in.symbol)
		if err != nil {
			return in, err
		}
		in.contract.Spot = spot
	default:
		in.contract.Spot = d.Spot
	}

	if in.days < 0 || in.days > maxDays {
		return in, fmt.Errorf("%w: days must be between 0 and %d, got %d", ErrInvalidInput, maxDays, in.days)
	}
	// Report the step count the lattice actually uses
	if in.steps < 1 {
		in.steps = 1
	}
	if in.steps > maxSteps {
		return in, fmt.Errorf("%w: steps must be at most %d, got %d", ErrInvalidInput, maxSteps, in.steps)
	}
	if math.IsNaN(in.pctChange) || in.pctChange < minPctChange || in.pctChange > maxPctChange {
		return in, fmt.Errorf("%w: pct_change must be between %.0f and %.0f, got %v", ErrInvalidInput, minPctChange, maxPctChange, in.pctChange)
	}
	if err := in.contract.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

// statusFor maps request errors onto HTTP status codes
func (h *PricingHandler) statusFor(err error) int {
	switch {
	case errors.Is(err, alpaca.ErrSpotUnavailable):
		if h.spot.Enabled() {
			return http.StatusBadGateway
		}
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidSide),
		errors.Is(err, pricing.ErrInvalidContract):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON pre-encodes the body so encoding failures become a clean 500
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error.Printf("❌ JSON encoding failed: %v", err)
		http.Error(w, "JSON encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Error.Printf("❌ Failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error.Printf("❌ %v", err)
	} else {
		logger.Debug.Printf("request rejected (%d): %v", status, err)
	}
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: err.Error()})
}
