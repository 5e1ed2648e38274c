package scenario

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/pricing"
)

func thetaScenario(id string, at time.Time) *Scenario {
	series := pricing.ThetaOverTime(100, 100, 0.01, 0, 0.2, 3, pricing.Call)
	return &Scenario{
		ID:        id,
		Kind:      KindTheta,
		CreatedAt: at,
		Inputs:    Inputs{Spot: 100, Strike: 100, Volatility: 0.2, RiskFreeRate: 0.01, Days: 3, Side: "call"},
		Theta:     &series,
	}
}

func coveredScenario(id string, at time.Time) *Scenario {
	series := pricing.SimulateCoveredCall(100, 105, 0.25, 0.02, 0, 5, 0.1)
	return &Scenario{
		ID:          id,
		Kind:        KindCoveredCall,
		CreatedAt:   at,
		Inputs:      Inputs{Spot: 100, Strike: 105, Volatility: 0.25, RiskFreeRate: 0.02, Days: 5, PctChange: 0.1},
		CoveredCall: &series,
	}
}

func TestNewID(t *testing.T) {
	at := time.Unix(1700000000, 500)
	if got := NewID(at); got != "scenario_1700000000" {
		t.Errorf("NewID = %q", got)
	}
	if NewID(at) != NewID(at.Add(400*time.Millisecond)) {
		t.Errorf("ids within the same second should match")
	}
}

func TestNewSelectsDriver(t *testing.T) {
	s, err := New(config.StoreConfig{Driver: "memory"})
	if err != nil || s.Driver() != "memory" {
		t.Fatalf("memory store: %v %v", s, err)
	}

	s, err = New(config.StoreConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "db", "s.db")})
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	defer s.Close()
	if s.Driver() != "sqlite" {
		t.Errorf("driver = %q", s.Driver())
	}

	if _, err := New(config.StoreConfig{Driver: "postgres"}); err == nil {
		t.Errorf("expected error for unsupported driver")
	}
}

func TestStores(t *testing.T) {
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "scenarios.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer sqliteStore.Close()

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			exerciseStore(t, store)
		})
	}
}

func exerciseStore(t *testing.T, store Store) {
	base := time.Unix(1700000000, 0).UTC()

	if err := store.Save(thetaScenario("scenario_1", base)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(coveredScenario("scenario_2", base.Add(time.Second))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get("scenario_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Kind != KindTheta || got.Theta == nil || got.Theta.Len() != 4 {
		t.Fatalf("unexpected theta scenario: %+v", got)
	}
	if got.Inputs.Side != "call" || got.Inputs.Days != 3 {
		t.Errorf("inputs not kept: %+v", got.Inputs)
	}

	cc, err := store.Get("scenario_2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cc.CoveredCall == nil || cc.CoveredCall.Len() != 6 {
		t.Fatalf("unexpected covered call scenario: %+v", cc)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "scenario_2" || list[1].ID != "scenario_1" {
		t.Fatalf("list not newest first: %+v", list)
	}
	if list[0].Points != 6 {
		t.Errorf("points = %d, want 6", list[0].Points)
	}

	// Same id replaces the previous run
	replacement := thetaScenario("scenario_1", base)
	replacement.Inputs.Days = 7
	if err := store.Save(replacement); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}
	got, _ = store.Get("scenario_1")
	if got.Inputs.Days != 7 {
		t.Errorf("replacement not stored: %+v", got.Inputs)
	}
	if list, _ = store.List(); len(list) != 2 {
		t.Errorf("replace should not add entries, got %d", len(list))
	}

	if err := store.Delete("scenario_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("scenario_1"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := store.Delete("scenario_1"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("second Delete: %v", err)
	}

	n, err := store.Clear()
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v; want 1", n, err)
	}
	if list, _ = store.List(); len(list) != 0 {
		t.Errorf("store not empty after clear: %+v", list)
	}
	t.Logf("✅ %s store round trip passed", store.Driver())
}
