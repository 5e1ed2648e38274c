package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// Side identifies whether a contract is a call or a put
type Side int

const (
	Call Side = iota
	Put
)

// ErrInvalidSide is returned when option side text is neither call nor put
var ErrInvalidSide = errors.New("invalid option side")

// ParseSide normalizes option side text ("Call", "put", "C", ...) into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "calls", "c":
		return Call, nil
	case "put", "puts", "p":
		return Put, nil
	}
	return Call, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

func (s Side) String() string {
	if s == Put {
		return "put"
	}
	return "call"
}

// Payoff returns the immediate-exercise value of one contract at the given spot
func (s Side) Payoff(spot, strike float64) float64 {
	if s == Put {
		return max0(strike - spot)
	}
	return max0(spot - strike)
}

func max0(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
