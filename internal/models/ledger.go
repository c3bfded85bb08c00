package models

import (
	"fmt"

	"github.com/fxledger/backend/internal/currency"
	"github.com/shopspring/decimal"
)

// InsufficientFundsError is returned by Debit when the converted amount is
// larger than the balance. Both amounts are in the canonical unit.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("The withdrawal amount (%s $) exceeds the available balance (%s $)",
		e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

// Credit converts amount into the canonical unit and adds it to the balance.
func (a *Account) Credit(rates currency.RateProvider, amount decimal.Decimal, code currency.Code) error {
	converted, err := currency.ToCanonical(rates, amount, code)
	if err != nil {
		return err
	}
	a.Balance = a.Balance.Add(converted)
	return nil
}

// Debit converts amount into the canonical unit and subtracts it from the
// balance. The balance is left untouched when it would go negative.
func (a *Account) Debit(rates currency.RateProvider, amount decimal.Decimal, code currency.Code) error {
	converted, err := currency.ToCanonical(rates, amount, code)
	if err != nil {
		return err
	}
	if converted.GreaterThan(a.Balance) {
		return &InsufficientFundsError{Requested: converted, Available: a.Balance}
	}
	a.Balance = a.Balance.Sub(converted)
	return nil
}
