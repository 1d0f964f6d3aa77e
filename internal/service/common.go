package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput marks a malformed or out-of-range field. Nothing is
	// written when an operation returns it.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidQuantity is returned by SetQuantity for unusable stock levels.
	ErrInvalidQuantity = fmt.Errorf("%w: quantity", ErrInvalidInput)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateNonNegativeFloat(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return invalidf("%s must be a finite number", name)
	}
	if value < 0 {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

// validateAlpha mirrors the name rule of the ward forms: a single word made
// only of letters.
func validateAlpha(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidf("%s is required", name)
	}
	for _, r := range value {
		if !unicode.IsLetter(r) {
			return "", invalidf("%s %q must contain letters only", name, value)
		}
	}
	return value, nil
}

var measurements = map[string]bool{"": true, "g": true, "mg": true, "mcg": true}

func normalizeMeasurement(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if !measurements[u] {
		return "", invalidf("measurement %q (use g, mg or mcg)", unit)
	}
	return u, nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return invalidf("%s must be > 0", name)
	}
	return nil
}
