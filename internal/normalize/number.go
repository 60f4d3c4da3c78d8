package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a locale-ambiguous currency/number cell into a float64.
// Currency symbols and whitespace are stripped first. When both "." and ","
// are present, whichever occurs last is the decimal separator and the other
// is a thousands separator ("2.242,62" → 2242.62, "1,234.56" → 1234.56).
// With a single separator type, "." is decimal and a lone "," is decimal.
// Unparsable input yields NaN.
//
// Rosters imported before this service existed were parsed with exactly
// these tie-breaks; keep them byte-for-byte compatible.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	for _, sym := range []string{"R$", "r$", "$", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return math.NaN()
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// comma decimal, dot thousands
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return math.NaN()
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
