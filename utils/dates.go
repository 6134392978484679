package utils

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for check-in/check-out dates.
	DateLayout = "2006-01-02"

	// MaxStayNights caps a single booking at one month.
	MaxStayNights = 30
)

var (
	ErrBadDateOrder = errors.New("date_from cannot be after date_to")
	ErrStayTooLong  = errors.New("cannot book for longer than 30 nights")
	ErrStayInPast   = errors.New("date_from cannot be in the past")
)

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight. All date
// columns hold these normalized values so interval comparisons are stable.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Nights returns the number of nights between two calendar dates.
func Nights(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// ValidateRange rejects inverted ranges. Used by search endpoints, where a
// same-day range is still a valid query.
func ValidateRange(from, to time.Time) error {
	if from.After(to) {
		return ErrBadDateOrder
	}
	return nil
}

// ValidateStay enforces booking-side rules: at least one night, at most
// MaxStayNights, and no stays starting before today.
func ValidateStay(from, to time.Time, now time.Time) error {
	if !to.After(from) {
		return ErrBadDateOrder
	}
	if Nights(from, to) > MaxStayNights {
		return ErrStayTooLong
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if from.Before(today) {
		return ErrStayInPast
	}
	return nil
}
