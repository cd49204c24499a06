// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatFixed formats f with exactly places decimals. Rounding works on the
// exact binary value, half away from zero, so 1.005 -> "1.00" like a
// browser's toFixed.
// e.g., FormatFixed(14.4, 2) -> "14.40", FormatFixed(1099.5, 0) -> "1100"
func FormatFixed(f float64, places int32) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	return roundExact(f, places).StringFixed(places)
}

// roundExact rounds the exact rational value of a finite f.
func roundExact(f float64, places int32) decimal.Decimal {
	r := new(big.Rat).SetFloat64(f)
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, places)
}

// nonFinite spells NaN and the infinities the way a browser prints them.
func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	}
	return "", false
}

// FormatPercent formats a percentage value with two decimals and a % sign.
// e.g., 2 -> "2.00%"
func FormatPercent(f float64) string {
	return FormatFixed(f, 2) + "%"
}

// FormatGrouped formats f with comma thousands separators and at most
// maxDecimals fraction digits, dropping trailing zeros.
// e.g., FormatGrouped(92523.36, 0) -> "92,523", FormatGrouped(1234.5, 3) -> "1,234.5"
func FormatGrouped(f float64, maxDecimals int32) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	s := roundExact(f, maxDecimals).String()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	grouped := groupDigits(intPart)
	if hasFrac {
		grouped += "." + frac
	}
	if neg && strings.Trim(grouped, "0.,") != "" {
		return "-" + grouped
	}
	return grouped
}

// FormatMoney formats a budget figure: grouped, no decimals.
func FormatMoney(f float64) string {
	return FormatGrouped(f, 0)
}

// FormatFactor formats a multiplier in its shortest decimal form.
// e.g., 1.2 -> "1.2", 1 -> "1"
func FormatFactor(f float64) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// OrDefault returns s, or fallback when s is blank.
func OrDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
