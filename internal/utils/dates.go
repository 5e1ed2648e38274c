package utils

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the expiration date format accepted in requests
const DateLayout = "2006-01-02"

// thirdFriday returns the third Friday of the given month
func thirdFriday(year int, month time.Month, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for first.Weekday() != time.Friday {
		first = first.AddDate(0, 0, 1)
	}
	return first.AddDate(0, 0, 14)
}

// NextOptionsExpiration returns the next standard monthly expiration:
// - Third Friday of the current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func NextOptionsExpiration(now time.Time) time.Time {
	expiry := thirdFriday(now.Year(), now.Month(), now.Location())
	weekStart := expiry.AddDate(0, 0, -7)

	if !now.Before(weekStart) {
		// time.Date normalises month 13 into January of next year
		return thirdFriday(now.Year(), now.Month()+1, now.Location())
	}
	return expiry
}

// DaysUntil counts calendar days from now's date to an expiration date given
// as YYYY-MM-DD. An expiration in the past is an error.
func DaysUntil(expiration string, now time.Time) (int, error) {
	exp, err := time.ParseInLocation(DateLayout, expiration, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date %q: %w", expiration, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Round(exp.Sub(today).Hours() / 24))
	if days < 0 {
		return 0, fmt.Errorf("expiration date %s is in the past", expiration)
	}
	return days, nil
}
