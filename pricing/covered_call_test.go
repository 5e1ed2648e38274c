package pricing

import "testing"

func TestSimulateCoveredCallZeroDays(t *testing.T) {
	series := SimulateCoveredCall(100, 100, 0.2, 0.01, 0, 0, 0)

	if series.Len() != 1 || series.Days[0] != 0 {
		t.Fatalf("days = %v, want [0]", series.Days)
	}
	if series.UnderlyingPrices[0] != 100 {
		t.Errorf("underlying = %v, want [100]", series.UnderlyingPrices)
	}
	if series.CallPrices[0] != 0 {
		t.Errorf("call = %v, want [0]", series.CallPrices)
	}
	if series.CoveredCallPrices[0] != 100 {
		t.Errorf("covered call = %v, want [100]", series.CoveredCallPrices)
	}
	if series.Greeks[0] != (CallGreeks{}) {
		t.Errorf("ATM greeks at expiry = %+v, want zero", series.Greeks[0])
	}
}

func TestSimulateCoveredCallLinearPath(t *testing.T) {
	series := SimulateCoveredCall(100, 100, 0.2, 0.01, 0, 10, 0.5)

	if series.Len() != 11 {
		t.Fatalf("len = %d, want 11", series.Len())
	}
	if series.UnderlyingPrices[0] != 100 {
		t.Errorf("first underlying = %v, want 100", series.UnderlyingPrices[0])
	}
	if series.UnderlyingPrices[10] != 100*1.5 {
		t.Errorf("last underlying = %v, want 150", series.UnderlyingPrices[10])
	}

	for day := 0; day <= 10; day++ {
		if series.Days[day] != day {
			t.Errorf("days[%d] = %d", day, series.Days[day])
		}
		if day > 0 && series.UnderlyingPrices[day] <= series.UnderlyingPrices[day-1] {
			t.Errorf("underlying not increasing at day %d: %v", day, series.UnderlyingPrices)
		}
		want := series.UnderlyingPrices[day] - series.CallPrices[day]
		if series.CoveredCallPrices[day] != want {
			t.Errorf("covered[%d] = %v, want %v", day, series.CoveredCallPrices[day], want)
		}
	}

	// Expiry: the call is worth its intrinsic value and caps the position at the strike.
	if series.CallPrices[10] != 50 || series.CoveredCallPrices[10] != 100 {
		t.Errorf("expiry call=%v covered=%v, want 50 and 100", series.CallPrices[10], series.CoveredCallPrices[10])
	}
	last, ok := series.Terminal()
	if !ok || last.Delta != 1 {
		t.Errorf("terminal greeks = %+v (ok=%v), want delta 1", last, ok)
	}
}

func TestSimulateCoveredCallMatchesClosedForm(t *testing.T) {
	series := SimulateCoveredCall(50, 55, 0.35, 0.04, 0.01, 20, -0.1)

	day := 7
	price := 50 + (45.0-50)*(float64(day)/20)
	remaining := float64(20-day) / DaysPerYear
	if !almostEqual(series.UnderlyingPrices[day], price, 1e-12) {
		t.Fatalf("underlying[%d] = %v, want %v", day, series.UnderlyingPrices[day], price)
	}
	if want := PriceCall(series.UnderlyingPrices[day], 55, remaining, 0.04, 0.35, 0.01); series.CallPrices[day] != want {
		t.Errorf("call[%d] = %v, want %v", day, series.CallPrices[day], want)
	}
	if want := CallGreeksAt(series.UnderlyingPrices[day], 55, remaining, 0.04, 0.35, 0.01); series.Greeks[day] != want {
		t.Errorf("greeks[%d] = %+v, want %+v", day, series.Greeks[day], want)
	}
	for d := 1; d < series.Len(); d++ {
		if series.UnderlyingPrices[d] >= series.UnderlyingPrices[d-1] {
			t.Fatalf("underlying should fall for a negative change, day %d", d)
		}
	}
}

func TestSimulateCoveredCallEmpty(t *testing.T) {
	series := SimulateCoveredCall(100, 100, 0.2, 0.01, 0, -3, 0.1)
	if series.Len() != 0 {
		t.Fatalf("negative days should give an empty series, got %d", series.Len())
	}
	if _, ok := series.Terminal(); ok {
		t.Errorf("Terminal on empty series should report false")
	}
}
