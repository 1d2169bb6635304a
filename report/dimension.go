package report

import (
	"fmt"
	"math"
	"strconv"
)

// FeetInchesSixteenths converts a decimal-inches value into carpenter
// notation, e.g. 18.0 -> `1'-6"` and 7.5 -> `7-1/2"`. The value is
// quantized to the nearest even sixteenth so fractions reduce to eighths
// or coarser. Zero-valued feet and inches segments are omitted; a net
// zero value yields the empty string.
func FeetInchesSixteenths(v float64) string {
	sixteenths := int(math.RoundToEven(math.RoundToEven(v*16)/2.0) * 2)
	if sixteenths <= 0 {
		return ""
	}

	feet := sixteenths / (12 * 16)
	rem := sixteenths % (12 * 16)
	inches := rem / 16
	frac := ""
	if s := rem % 16; s != 0 {
		num := s / 2
		den := 8
		g := gcd(num, den)
		frac = fmt.Sprintf("%d/%d\"", num/g, den/g)
	}

	switch {
	case feet > 0 && inches > 0 && frac != "":
		return fmt.Sprintf("%d'-%d-%s", feet, inches, frac)
	case feet > 0 && inches > 0:
		return fmt.Sprintf("%d'-%d\"", feet, inches)
	case feet > 0 && frac != "":
		return fmt.Sprintf("%d'-%s", feet, frac)
	case feet > 0:
		return fmt.Sprintf("%d'", feet)
	case inches > 0 && frac != "":
		return fmt.Sprintf("%d-%s", inches, frac)
	case inches > 0:
		return fmt.Sprintf("%d\"", inches)
	default:
		return frac
	}
}

// FeetInchesSixteenthsString is FeetInchesSixteenths over a raw field
// value; non-numeric or empty input yields the empty string.
func FeetInchesSixteenthsString(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return FeetInchesSixteenths(v)
}

// FormatScalar strips trailing zeros from a numeric field for display
// (16.00 -> 16, 5.500 -> 5.5). Non-numeric input passes through.
func FormatScalar(value string) string {
	if value == "" {
		return value
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatWeight rounds a weight field up to the nearest whole pound.
// Non-numeric input passes through.
func FormatWeight(value string) string {
	if value == "" {
		return value
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strconv.Itoa(int(math.Ceil(v)))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
