package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in integer minor units (cents). All schedule
// arithmetic happens in cents so repeated periods accumulate no float drift.
type Money int64

var centsPerUnit = decimal.NewFromInt(100)

// MoneyFromDecimal converts a decimal amount in major units (dollars) to
// cents, rounding half away from zero.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(centsPerUnit).Round(0).IntPart())
}

// MoneyFromString parses a decimal string such as "1234.56" into cents.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}

	return MoneyFromDecimal(d), nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(centsPerUnit)
}

// String renders the amount in major units with two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}
