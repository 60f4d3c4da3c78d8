package normalize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"folharh/internal/normalize"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"br_thousands", "2.242,62", 2242.62},
		{"us_thousands", "1,234.56", 1234.56},
		{"plain_integer", "1500", 1500},
		{"plain_decimal", "1500.50", 1500.50},
		{"lone_comma_decimal", "1500,50", 1500.50},
		{"currency_prefix", "R$ 3.500,00", 3500},
		{"dollar_prefix", "$1,250.75", 1250.75},
		{"surrounding_space", "  980  ", 980},
		{"zero", "0", 0},
		{"negative", "-120,50", -120.50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, normalize.ParseNumber(tc.in), 1e-9)
		})
	}
}

func TestParseNumber_NaN(t *testing.T) {
	cases := map[string]string{
		"letters":        "abc",
		"empty":          "",
		"only_currency":  "R$",
		"double_comma":   "1,2,3",
		"trailing_junk":  "1500x",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, math.IsNaN(normalize.ParseNumber(in)))
		})
	}
}
