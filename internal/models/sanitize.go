package models

import (
	"github.com/jwaldner/optionsim/internal/logger"
	"github.com/jwaldner/optionsim/pricing"
)

// JSON cannot carry NaN or Inf, so non-finite engine output is replaced with
// zero before encoding. The Display text of a FieldValue keeps "N/A".

func sanitizeValue(field string, v *float64) int {
	if isFinite(*v) {
		return 0
	}
	logger.Warn.Printf("🔧 Sanitized non-finite %s=%v", field, *v)
	*v = 0
	return 1
}

func sanitizeSlice(field string, values []float64) int {
	n := 0
	for i := range values {
		n += sanitizeValue(field, &values[i])
	}
	return n
}

func sanitizeField(field string, fv *FieldValue) int {
	raw, ok := fv.Raw.(float64)
	if !ok || isFinite(raw) {
		return 0
	}
	logger.Warn.Printf("🔧 Sanitized non-finite %s=%v", field, raw)
	fv.Raw = 0.0
	return 1
}

func sanitizeGreeks(g *pricing.CallGreeks) int {
	return sanitizeValue("delta", &g.Delta) +
		sanitizeValue("gamma", &g.Gamma) +
		sanitizeValue("theta", &g.Theta) +
		sanitizeValue("vega", &g.Vega) +
		sanitizeValue("rho", &g.Rho)
}

// SanitizeThetaSeries zeroes non-finite entries in place and returns how many changed
func SanitizeThetaSeries(s *pricing.ThetaSeries) int {
	return sanitizeSlice("theta", s.ThetaValues) +
		sanitizeSlice("price", s.Prices) +
		sanitizeSlice("delta", s.DeltaValues) +
		sanitizeSlice("gamma", s.GammaValues)
}

// SanitizeCoveredCallSeries zeroes non-finite entries in place and returns how many changed
func SanitizeCoveredCallSeries(s *pricing.CoveredCallSeries) int {
	n := sanitizeSlice("underlying_price", s.UnderlyingPrices) +
		sanitizeSlice("call_price", s.CallPrices) +
		sanitizeSlice("covered_call_price", s.CoveredCallPrices)
	for i := range s.Greeks {
		n += sanitizeGreeks(&s.Greeks[i])
	}
	return n
}

// Sanitize zeroes the non-finite numbers of the American price response
func (r *AmericanPriceResponse) Sanitize() int {
	return sanitizeField("price", &r.Price) +
		sanitizeField("delta", &r.Delta) +
		sanitizeField("gamma", &r.Gamma) +
		sanitizeValue("risk_neutral_probability", &r.RiskNeutralProbability)
}

// Sanitize zeroes the non-finite numbers of the European price response
func (r *EuropeanPriceResponse) Sanitize() int {
	return sanitizeValue("valuation", &r.Valuation.Price) +
		sanitizeField("price", &r.Price) +
		sanitizeGreeks(&r.Greeks)
}
