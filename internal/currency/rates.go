package currency

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// RateProvider returns the multiplier converting one unit of a currency into
// the canonical unit.
type RateProvider interface {
	Rate(code Code) (decimal.Decimal, error)
}

// Static conversion rates. These are not refreshed at runtime, so balances
// credited in EUR or XOF drift from market value as the real rates move.
var (
	rateEURToUSD = decimal.RequireFromString("1.18")
	rateXOFToUSD = decimal.RequireFromString("0.0018")
)

// StaticRates is the built-in rate table.
type StaticRates struct{}

func (StaticRates) Rate(code Code) (decimal.Decimal, error) {
	switch code {
	case USD:
		return decimal.NewFromInt(1), nil
	case EUR:
		return rateEURToUSD, nil
	case XOF:
		return rateXOFToUSD, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
}

// FileRates serves rates from a YAML table and falls back to StaticRates for
// codes the table does not list.
type FileRates struct {
	rates map[Code]decimal.Decimal
}

type rateFile struct {
	Rates map[string]string `yaml:"rates"`
}

// LoadFileRates reads a file of the form:
//
//	rates:
//	  EUR: "1.18"
//	  XOF: "0.0018"
func LoadFileRates(path string) (*FileRates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file: %w", err)
	}
	return ParseFileRates(data)
}

func ParseFileRates(data []byte) (*FileRates, error) {
	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rates file: %w", err)
	}

	rates := make(map[Code]decimal.Decimal, len(f.Rates))
	for raw, value := range f.Rates {
		code, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("rates file: %w: %q", err, raw)
		}
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("rates file: invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rates file: rate for %s must be positive", code)
		}
		rates[code] = rate
	}
	// the canonical unit always converts 1:1
	rates[Canonical] = decimal.NewFromInt(1)

	zap.L().Debug("Loaded rate table", zap.Int("count", len(rates)))
	return &FileRates{rates: rates}, nil
}

func (f *FileRates) Rate(code Code) (decimal.Decimal, error) {
	if rate, ok := f.rates[code]; ok {
		return rate, nil
	}
	return StaticRates{}.Rate(code)
}

// ToCanonical converts amount expressed in code into the canonical unit,
// rounded half away from zero to Scale places. A positive amount that
// rounds to zero fails with ErrBelowPrecision.
func ToCanonical(rates RateProvider, amount decimal.Decimal, code Code) (decimal.Decimal, error) {
	rate, err := rates.Rate(code)
	if err != nil {
		return decimal.Zero, err
	}
	converted := amount.Mul(rate).Round(Scale)
	if amount.IsPositive() && converted.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s %s", ErrBelowPrecision, amount, code)
	}
	return converted, nil
}

// WithinScale reports whether amount has no more than Scale decimal places.
func WithinScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(Scale))
}
