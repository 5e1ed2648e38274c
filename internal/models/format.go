package models

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jwaldner/optionsim/pricing"
)

// NotAvailable is shown in place of a value that cannot be computed
const NotAvailable = "N/A"

// greekPlaces matches the four decimals of the Greeks panel
const greekPlaces = 4

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// fixed renders v with the given decimals, rounding half away from zero.
// decimal.NewFromFloat panics on NaN and Inf, so those render as N/A.
func fixed(v float64, places int32) string {
	if !isFinite(v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatCurrency renders a dollar amount with cents
func FormatCurrency(value float64) FieldValue {
	display := NotAvailable
	if isFinite(value) {
		display = "$" + fixed(value, 2)
	}
	return FieldValue{
		Raw:     value,
		Display: display,
		Type:    "currency",
	}
}

// FormatGreek renders a sensitivity with four decimals
func FormatGreek(value float64) FieldValue {
	return FieldValue{
		Raw:     value,
		Display: fixed(value, greekPlaces),
		Type:    "greek",
	}
}

// FormatPercentage renders a fraction such as 0.25 as "25.00%"
func FormatPercentage(value float64) FieldValue {
	display := NotAvailable
	if isFinite(value) {
		display = decimal.NewFromFloat(value).Shift(2).StringFixed(2) + "%"
	}
	return FieldValue{
		Raw:     value,
		Display: display,
		Type:    "percentage",
	}
}

// FormatGreeks renders a Greeks bundle for display
func FormatGreeks(g pricing.CallGreeks) GreeksDisplay {
	return GreeksDisplay{
		Delta: fixed(g.Delta, greekPlaces),
		Gamma: fixed(g.Gamma, greekPlaces),
		Theta: fixed(g.Theta, greekPlaces),
		Vega:  fixed(g.Vega, greekPlaces),
		Rho:   fixed(g.Rho, greekPlaces),
	}
}

// TerminalGreeks renders the last day's Greeks of a covered call run,
// or N/A for every field when the run produced no days.
func TerminalGreeks(series pricing.CoveredCallSeries) GreeksDisplay {
	g, ok := series.Terminal()
	if !ok {
		return GreeksDisplay{
			Delta: NotAvailable,
			Gamma: NotAvailable,
			Theta: NotAvailable,
			Vega:  NotAvailable,
			Rho:   NotAvailable,
		}
	}
	return FormatGreeks(g)
}
