// Package price normalizes the heterogeneous price representations that
// accumulated in stored book records (bare numbers, numeric strings, already
// formatted strings) into one canonical display form.
package price

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Marker is the canonical currency marker every price is prefixed with.
const Marker = "₹"

// Zero is the canonical zero value returned for unparseable input.
const Zero = Marker + "0.00"

// Normalize converts a price into its canonical form: Marker + two decimal
// places. A string already carrying the marker is returned unchanged, which
// makes the function idempotent. Unparseable or non-finite input yields Zero.
func Normalize(v any) string {
	switch value := v.(type) {
	case nil:
		return Zero
	case string:
		if strings.HasPrefix(value, Marker) {
			return value
		}
		return format(parse(value))
	case float64:
		return format(value)
	case float32:
		return format(float64(value))
	case int:
		return format(float64(value))
	case int64:
		return format(float64(value))
	default:
		return format(parse(fmt.Sprint(value)))
	}
}

// Amount parses a canonical or raw price string back into a number. Garbage
// yields 0.
func Amount(s string) float64 {
	f := parse(strings.TrimPrefix(s, Marker))
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func format(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return Marker + strconv.FormatFloat(f, 'f', 2, 64)
}

// parse strips everything that cannot be part of a decimal number and parses
// the rest. A leading minus sign survives; any other non-numeric characters
// (currency symbols, spaces, thousands separators) are dropped.
func parse(s string) float64 {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
