package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const sigDigits = 9

// formatNumber renders n the way STR$ does (spec §4.5): a leading space for
// n >= 0, a minus for n < 0, "0" for zero, scientific notation outside
// [1e-9, 1e10), a bare integer when n has no fractional part, and otherwise
// up to 9 significant digits with trailing zeros and a trailing dot
// trimmed. PRINT calls this and then appends a trailing space (§4.6).
func formatNumber(n float64) string {
	sign := " "
	if math.Signbit(n) && n != 0 {
		sign = "-"
		n = -n
	}
	if n == 0 {
		return sign + "0"
	}

	var body string
	switch {
	case n >= 1e10 || n < 1e-9:
		body = sciNotation(n)
	case isWholeNumber(n):
		body = strconv.FormatFloat(n, 'f', 0, 64)
	default:
		body = fixedSigDigits(n)
	}
	return sign + body
}

func isWholeNumber(n float64) bool {
	return n < 1e10 && n == math.Floor(n)
}

// fixedSigDigits renders n with up to sigDigits significant digits, trimming
// trailing zeros and any trailing decimal point.
func fixedSigDigits(n float64) string {
	e10 := int(math.Floor(math.Log10(n)))
	decimals := sigDigits - 1 - e10
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	// FormatFloat's rounding can carry an extra integer digit (e.g.
	// 9.999999996 -> "10.000000"); re-derive e10 in that case would be
	// needed for scientific mode, but since callers only reach here for
	// n < 1e10 the carry cannot push us out of fixed-point range.
	return trimTrailingZeros(s)
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// sciNotation renders n (n > 0, already sign-stripped) in MS BASIC's
// scientific form: a normalized mantissa in [1,10) with trailing zeros
// trimmed (keeping at least one digit after the dot), a capital E, and a
// signed exponent.
func sciNotation(n float64) string {
	exp := int(math.Floor(math.Log10(n)))
	mant := n / math.Pow(10, float64(exp))
	// guard against log10 rounding putting mant just outside [1,10)
	if mant >= 10 {
		mant /= 10
		exp++
	} else if mant < 1 {
		mant *= 10
		exp--
	}

	mantStr := strconv.FormatFloat(mant, 'f', sigDigits-1, 64)
	if strings.HasPrefix(mantStr, "10") {
		// rounding carried the mantissa up to 10.xxx
		exp++
		mant = mant / 10
		mantStr = strconv.FormatFloat(mant, 'f', sigDigits-1, 64)
	}
	mantStr = strings.TrimRight(mantStr, "0")
	if strings.HasSuffix(mantStr, ".") {
		mantStr += "0"
	}
	return fmt.Sprintf("%sE%+d", mantStr, exp)
}
