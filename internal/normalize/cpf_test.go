package normalize_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"folharh/internal/normalize"
)

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "12345678909", normalize.NormalizeCPF("123.456.789-09"))
	assert.Equal(t, "12345678909", normalize.NormalizeCPF(" 123 456 789 09 "))
	assert.Equal(t, "12345678909", normalize.NormalizeCPF("12345678909"))
	assert.Equal(t, "", normalize.NormalizeCPF("abc-"))
}

func TestValidateCPF_Valid(t *testing.T) {
	// Sequences satisfying both mod-11 check digits.
	valid := []string{
		"529.982.247-25",
		"52998224725",
		"111.444.777-35",
		"935.411.347-80",
	}
	for _, cpf := range valid {
		assert.True(t, normalize.ValidateCPF(cpf), "expected %s to be valid", cpf)
	}
}

func TestValidateCPF_Invalid(t *testing.T) {
	cases := map[string]string{
		"short":          "1234567890",
		"long":           "123456789012",
		"letters":        "abcdefghijk",
		"bad_check_1":    "529.982.247-35",
		"bad_check_2":    "529.982.247-24",
		"empty":          "",
		"formatted_junk": "52.99.82-24",
	}
	for name, cpf := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, normalize.ValidateCPF(cpf))
		})
	}
}

func TestValidateCPF_RepeatedDigits(t *testing.T) {
	for d := 0; d <= 9; d++ {
		cpf := ""
		for i := 0; i < 11; i++ {
			cpf += fmt.Sprintf("%d", d)
		}
		assert.False(t, normalize.ValidateCPF(cpf), "all-%d CPF must be rejected", d)
	}
}

func TestValidateCPF_ChecksumSensitivity(t *testing.T) {
	// Mutating any single digit of a valid CPF should almost always break it.
	const base = "52998224725"
	mutations, failures := 0, 0
	for pos := 0; pos < 11; pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if base[pos] == d {
				continue
			}
			mutated := base[:pos] + string(d) + base[pos+1:]
			mutations++
			if !normalize.ValidateCPF(mutated) {
				failures++
			}
		}
	}
	assert.GreaterOrEqual(t, float64(failures)/float64(mutations), 0.99)
}
