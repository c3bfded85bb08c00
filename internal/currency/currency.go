package currency

import (
	"errors"
	"strings"
)

// Code is an ISO 4217 code accepted by the ledger.
type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	XOF Code = "XOF"
)

// Canonical is the unit every stored balance is expressed in.
const Canonical = USD

// Scale is the number of decimal places amounts and balances are stored with.
const Scale int32 = 8

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrBelowPrecision      = errors.New("amount is below the stored precision")
)

// Supported lists the codes a request may carry.
var Supported = []Code{USD, EUR, XOF}

func (c Code) String() string {
	return string(c)
}

// Valid reports whether c is one of the supported codes.
func (c Code) Valid() bool {
	for _, s := range Supported {
		if c == s {
			return true
		}
	}
	return false
}

// Parse normalizes s and returns the matching code.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}
