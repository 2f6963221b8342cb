package utils

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Calendar years in this band are dates, never money.
const (
	MinCalendarYear = 1990
	MaxCalendarYear = 2100
)

var (
	currencyPrefixRegex = regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)`)
	nonNumericRegex     = regexp.MustCompile(`[^\d.]`)
)

// IsCalendarYear reports whether v falls in the year exclusion band.
func IsCalendarYear(v float64) bool {
	return v >= MinCalendarYear && v <= MaxCalendarYear
}

// ParseAmount parses a numeric token such as "25,500.00" into a monetary
// value. Tokens that do not parse, are negative or non-finite, or look like
// a calendar year are rejected.
func ParseAmount(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "/-")
	if cleaned == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	v := d.InexactFloat64()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	if IsCalendarYear(v) {
		return 0, false
	}
	return v, true
}

// CleanAmount strips currency markers and separators from a raw amount
// token ("Rs. 50,000") and parses what is left.
func CleanAmount(raw string) (float64, bool) {
	s := currencyPrefixRegex.ReplaceAllString(raw, "")
	s = nonNumericRegex.ReplaceAllString(s, "")
	s = strings.Trim(s, ".")
	return ParseAmount(s)
}
