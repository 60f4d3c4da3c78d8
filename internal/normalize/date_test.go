package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folharh/internal/normalize"
)

func TestParseDate(t *testing.T) {
	d, err := normalize.ParseDate("15/03/1990")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	cases := map[string]string{
		"iso_order":     "1990/03/15",
		"two_parts":     "15/03",
		"four_parts":    "15/03/19/90",
		"non_numeric":   "aa/bb/cccc",
		"empty":         "",
		"dash_format":   "15-03-1990",
		"no_such_day":   "31/02/1990",
		"two_digit_year": "15/03/90",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := normalize.ParseDate(raw)
			assert.Error(t, err)
		})
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("after_birthday", func(t *testing.T) {
		asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 34, normalize.Age(birth, asOf))
	})
	t.Run("before_birthday", func(t *testing.T) {
		asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 33, normalize.Age(birth, asOf))
	})
	t.Run("on_birthday", func(t *testing.T) {
		asOf := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 34, normalize.Age(birth, asOf))
	})
}
