package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoLocations is returned when a generation run is given an empty location list.
var ErrNoLocations = errors.New("at least one location is required")

// ErrDayCountNotPositive is returned when the day count is zero or negative.
var ErrDayCountNotPositive = errors.New("day count must be positive")

// ErrLocationEmpty is returned when a location label is empty or whitespace-only after trim.
var ErrLocationEmpty = errors.New("location is required")

// ErrLocationTooShort is returned when a location label is below the minimum length.
var ErrLocationTooShort = errors.New("location too short")

// ErrLocationTooLong is returned when a location label exceeds the maximum length.
var ErrLocationTooLong = errors.New("location too long")

// ErrLocationInvalidChars is returned when a location label contains disallowed characters.
var ErrLocationInvalidChars = errors.New("location contains invalid characters")

// ValidateDayCount rejects zero and negative day counts.
func ValidateDayCount(days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: got %d", ErrDayCountNotPositive, days)
	}
	return nil
}

// ValidateLocation trims the input, enforces length bounds (minLen, maxLen in runes; zero disables
// a bound) and restricts to letters (Unicode), digits, space, comma, hyphen.
// Returns the trimmed label.
func ValidateLocation(input string, minLen, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	n := len(r)
	if n == 0 {
		return "", ErrLocationEmpty
	}
	if minLen > 0 && n < minLen {
		return "", ErrLocationTooShort
	}
	if maxLen > 0 && n > maxLen {
		return "", ErrLocationTooLong
	}
	for _, c := range r {
		if !isAllowedLocationRune(c) {
			return "", ErrLocationInvalidChars
		}
	}
	return s, nil
}

// ValidateLocations validates every label with ValidateLocation and returns the trimmed list.
// Duplicates are kept; order is preserved.
func ValidateLocations(locations []string, minLen, maxLen int) ([]string, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	out := make([]string, 0, len(locations))
	for i, loc := range locations {
		s, err := ValidateLocation(loc, minLen, maxLen)
		if err != nil {
			return nil, fmt.Errorf("location %d (%q): %w", i, loc, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func isAllowedLocationRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-':
		return true
	}
	return false
}
