// Package scenario keeps the results of theta sweeps and covered-call runs
// so they can be listed, fetched again, or cleared.
package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/pricing"
)

// ErrUnknownScenario is returned when an id is not in the store
var ErrUnknownScenario = errors.New("unknown scenario")

// Kind identifies which simulation produced a scenario
type Kind string

const (
	KindTheta       Kind = "theta"
	KindCoveredCall Kind = "covered_call"
)

// Inputs records the parameters a scenario was run with
type Inputs struct {
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Volatility    float64 `json:"volatility"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	DividendYield float64 `json:"dividend_yield"`
	Days          int     `json:"days"`
	Side          string  `json:"side,omitempty"`
	PctChange     float64 `json:"pct_change,omitempty"`
	Symbol        string  `json:"symbol,omitempty"`
}

// Scenario is one stored run. Exactly one of Theta or CoveredCall is set.
type Scenario struct {
	ID          string                     `json:"id"`
	Kind        Kind                       `json:"kind"`
	CreatedAt   time.Time                  `json:"created_at"`
	Inputs      Inputs                     `json:"inputs"`
	Theta       *pricing.ThetaSeries       `json:"theta,omitempty"`
	CoveredCall *pricing.CoveredCallSeries `json:"covered_call,omitempty"`
}

// Summary is the listing view of a scenario
type Summary struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Points    int       `json:"points"`
}

// Summary returns the listing view of s
func (s *Scenario) Summary() Summary {
	points := 0
	switch {
	case s.Theta != nil:
		points = s.Theta.Len()
	case s.CoveredCall != nil:
		points = s.CoveredCall.Len()
	}
	return Summary{ID: s.ID, Kind: s.Kind, CreatedAt: s.CreatedAt, Points: points}
}

// Store persists scenarios. Save replaces any scenario with the same id.
type Store interface {
	Save(s *Scenario) error
	Get(id string) (*Scenario, error)
	List() ([]Summary, error)
	Delete(id string) error
	Clear() (int, error)
	Driver() string
	Close() error
}

// NewID builds the id for a run started at now. Two runs within the same
// second share an id, so the later one replaces the earlier.
func NewID(now time.Time) string {
	return fmt.Sprintf("scenario_%d", now.Unix())
}

// New opens the store selected by cfg.Driver
func New(cfg config.StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
