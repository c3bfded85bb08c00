package currency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonical_StaticRates(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		code     Code
		expected string
	}{
		{"USD is identity", "42.50", USD, "42.5"},
		{"EUR uses 1.18", "100", EUR, "118"},
		{"XOF uses 0.0018", "100", XOF, "0.18"},
		{"small XOF amount", "1", XOF, "0.0018"},
		{"rounded to the stored scale", "1.23456789", XOF, "0.00222222"},
		{"rounds half away from zero", "0.00000278", XOF, "0.00000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonical(StaticRates{}, decimal.RequireFromString(tt.amount), tt.code)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestToCanonical_BelowPrecision(t *testing.T) {
	_, err := ToCanonical(StaticRates{}, decimal.RequireFromString("0.000001"), XOF)
	assert.ErrorIs(t, err, ErrBelowPrecision)

	zero, err := ToCanonical(StaticRates{}, decimal.Zero, XOF)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestWithinScale(t *testing.T) {
	assert.True(t, WithinScale(decimal.RequireFromString("1.12345678")))
	assert.True(t, WithinScale(decimal.RequireFromString("1.100000000")))
	assert.False(t, WithinScale(decimal.RequireFromString("0.000000001")))
}

func TestToCanonical_UnsupportedCurrency(t *testing.T) {
	_, err := ToCanonical(StaticRates{}, decimal.NewFromInt(1), Code("GBP"))
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestParse(t *testing.T) {
	code, err := Parse(" eur ")
	require.NoError(t, err)
	assert.Equal(t, EUR, code)

	_, err = Parse("JPY")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestFileRates(t *testing.T) {
	t.Run("overrides listed codes and falls back for others", func(t *testing.T) {
		rates, err := ParseFileRates([]byte("rates:\n  EUR: \"1.10\"\n"))
		require.NoError(t, err)

		eur, err := rates.Rate(EUR)
		require.NoError(t, err)
		assert.True(t, eur.Equal(decimal.RequireFromString("1.10")))

		xof, err := rates.Rate(XOF)
		require.NoError(t, err)
		assert.True(t, xof.Equal(decimal.RequireFromString("0.0018")))

		usd, err := rates.Rate(USD)
		require.NoError(t, err)
		assert.True(t, usd.Equal(decimal.NewFromInt(1)))
	})

	t.Run("canonical rate cannot be overridden", func(t *testing.T) {
		rates, err := ParseFileRates([]byte("rates:\n  USD: \"2\"\n"))
		require.NoError(t, err)

		usd, err := rates.Rate(USD)
		require.NoError(t, err)
		assert.True(t, usd.Equal(decimal.NewFromInt(1)))
	})

	t.Run("rejects unknown codes", func(t *testing.T) {
		_, err := ParseFileRates([]byte("rates:\n  GBP: \"1.3\"\n"))
		assert.ErrorIs(t, err, ErrUnsupportedCurrency)
	})

	t.Run("rejects non-positive rates", func(t *testing.T) {
		_, err := ParseFileRates([]byte("rates:\n  EUR: \"0\"\n"))
		assert.Error(t, err)
	})

	t.Run("loads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rates:\n  XOF: \"0.0017\"\n"), 0o600))

		rates, err := LoadFileRates(path)
		require.NoError(t, err)

		got, err := ToCanonical(rates, decimal.NewFromInt(1000), XOF)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("1.7")))
	})
}
