package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jwaldner/optionsim/internal/alpaca"
	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/internal/logger"
	"github.com/jwaldner/optionsim/internal/models"
	"github.com/jwaldner/optionsim/internal/scenario"
	"github.com/jwaldner/optionsim/internal/treasury"
	"github.com/jwaldner/optionsim/internal/utils"
	"github.com/jwaldner/optionsim/pricing"
)

type PricingHandler struct {
	config *config.Config
	store  scenario.Store
	rates  treasury.RateSource
	spot   alpaca.SpotSource
	now    func() time.Time
}

func NewPricingHandler(cfg *config.Config, store scenario.Store, rates treasury.RateSource, spot alpaca.SpotSource) *PricingHandler {
	return &PricingHandler{
		config: cfg,
		store:  store,
		rates:  rates,
		spot:   spot,
		now:    time.Now,
	}
}

func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:         "ok",
		Store:          h.store.Driver(),
		RateSource:     h.rates.Name(),
		MarketData:     h.spot.Enabled(),
		NextExpiration: utils.NextOptionsExpiration(now).Format(utils.DateLayout),
		Timestamp:      now.UTC(),
	})
}

// checkProbability logs when the lattice's risk-neutral probability leaves
// [0, 1]. Prices are still returned; the flag goes back to the caller.
func checkProbability(in resolvedInputs, p float64, T float64, steps int) bool {
	if pricing.ProbabilityInRange(p) {
		return true
	}
	logger.Warn.WithFields(logrus.Fields{
		"p":      p,
		"rate":   in.contract.RiskFreeRate,
		"div":    in.contract.DividendYield,
		"vol":    in.contract.Volatility,
		"expiry": T,
		"steps":  steps,
	}).Warn("⚠️ risk-neutral probability outside [0,1], lattice result is not arbitrage-free")
	return false
}

// AmericanPriceHandler prices one American option on the lattice
func (h *PricingHandler) AmericanPriceHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := h.resolve(r, req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}

	start := time.Now()
	T := in.timeToExpiry()
	c := in.contract
	price := c.American(T, in.steps)
	greeks := c.AmericanGreeks(T, in.steps)
	p := pricing.RiskNeutralProbability(c.RiskFreeRate, c.DividendYield, c.Volatility, T, in.steps)

	resp := models.AmericanPriceResponse{
		Success:                true,
		Contract:               in.view(true),
		Steps:                  in.steps,
		Price:                  models.FormatCurrency(price),
		Delta:                  models.FormatGreek(greeks.Delta),
		Gamma:                  models.FormatGreek(greeks.Gamma),
		RiskNeutralProbability: p,
		ProbabilityInRange:     checkProbability(in, p, T, in.steps),
	}
	resp.Sanitize()

	logger.Info.Printf("🌳 American %s S=%.2f K=%.2f days=%d steps=%d -> %s (%v)",
		c.Side, c.Spot, c.Strike, in.days, in.steps, resp.Price.Display, time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

// ThetaHandler runs a theta sweep and stores it as a scenario
func (h *PricingHandler) ThetaHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := h.resolve(r, req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}

	start := time.Now()
	series := in.contract.ThetaOverTime(in.days)
	inRange := h.sweepProbabilityInRange(in)
	if n := models.SanitizeThetaSeries(&series); n > 0 {
		logger.Warn.Printf("🔧 theta sweep had %d non-finite values", n)
	}

	now := h.now()
	sc := &scenario.Scenario{
		ID:        scenario.NewID(now),
		Kind:      scenario.KindTheta,
		CreatedAt: now.UTC(),
		Inputs:    inputsOf(in, true),
		Theta:     &series,
	}
	if err := h.store.Save(sc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info.Printf("⏳ Theta sweep %s %s days=%d (%d points) in %v",
		sc.ID, in.contract.Side, in.days, series.Len(), time.Since(start))
	writeJSON(w, http.StatusOK, models.ThetaResponse{
		Success:            true,
		ScenarioID:         sc.ID,
		Contract:           in.view(true),
		Series:             series,
		ProbabilityInRange: inRange,
	})
}

// sweepProbabilityInRange checks p for every lattice the sweep builds
func (h *PricingHandler) sweepProbabilityInRange(in resolvedInputs) bool {
	c := in.contract
	T := in.timeToExpiry()
	for day := 0; day <= in.days; day++ {
		remaining := pricing.SweepRemaining(T, day)
		steps := pricing.SweepSteps(remaining)
		p := pricing.RiskNeutralProbability(c.RiskFreeRate, c.DividendYield, c.Volatility, remaining, steps)
		if !checkProbability(in, p, remaining, steps) {
			return false
		}
	}
	return true
}

// EuropeanPriceHandler prices a European call in closed form with an
// explicit boundary for degenerate volatility or expiry.
func (h *PricingHandler) EuropeanPriceHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := h.resolve(r, req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}

	T := in.timeToExpiry()
	c := in.contract
	valuation := c.EvaluateCall(T)
	greeks := c.CallGreeks(T)
	if valuation.IsBoundary() {
		greeks = c.BoundaryCallGreeks(T)
		logger.Debug.Printf("European call valued at boundary: σ=%g T=%g", c.Volatility, T)
	}

	resp := models.EuropeanPriceResponse{
		Success:    true,
		Contract:   in.view(false),
		Valuation:  valuation,
		Price:      models.FormatCurrency(valuation.Price),
		Greeks:     greeks,
		GreeksText: models.FormatGreeks(greeks),
	}
	resp.Sanitize()
	writeJSON(w, http.StatusOK, resp)
}

// CoveredCallHandler simulates a covered call and stores it as a scenario
func (h *PricingHandler) CoveredCallHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := h.resolve(r, req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}

	start := time.Now()
	series := in.contract.SimulateCoveredCall(in.days, in.pctChange)
	// Terminal text is rendered before sanitizing so NaN shows as N/A
	terminal := models.TerminalGreeks(series)
	if n := models.SanitizeCoveredCallSeries(&series); n > 0 {
		logger.Warn.Printf("🔧 covered call run had %d non-finite values", n)
	}

	now := h.now()
	sc := &scenario.Scenario{
		ID:          scenario.NewID(now),
		Kind:        scenario.KindCoveredCall,
		CreatedAt:   now.UTC(),
		Inputs:      inputsOf(in, false),
		CoveredCall: &series,
	}
	if err := h.store.Save(sc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info.Printf("📈 Covered call %s S0=%.2f K=%.2f days=%d pct=%.2f (%d points) in %v",
		sc.ID, in.contract.Spot, in.contract.Strike, in.days, in.pctChange, series.Len(), time.Since(start))
	writeJSON(w, http.StatusOK, models.CoveredCallResponse{
		Success:        true,
		ScenarioID:     sc.ID,
		Contract:       in.view(false),
		PctChange:      in.pctChange,
		FinalPrice:     models.FormatCurrency(in.contract.Spot * (1 + in.pctChange)),
		Series:         series,
		TerminalGreeks: terminal,
	})
}

func inputsOf(in resolvedInputs, withSide bool) scenario.Inputs {
	out := scenario.Inputs{
		Spot:          in.contract.Spot,
		Strike:        in.contract.Strike,
		Volatility:    in.contract.Volatility,
		RiskFreeRate:  in.contract.RiskFreeRate,
		DividendYield: in.contract.DividendYield,
		Days:          in.days,
		Symbol:        in.symbol,
	}
	if withSide {
		out.Side = in.contract.Side.String()
	} else {
		out.PctChange = in.pctChange
	}
	return out
}
