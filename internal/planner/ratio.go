package planner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
)

// ratioPlaces is the precision of a reported debt-to-income ratio, enough to
// render a percentage with two decimal places.
const ratioPlaces = 4

// DebtToIncomeRatio divides the sum of minimum payments across all supplied
// debts by the monthly income. Non-positive income is a reported condition,
// not a panic; the division never runs against zero.
func DebtToIncomeRatio(debts []domain.Debt, monthlyIncome domain.Money) (decimal.Decimal, error) {
	if err := domain.ValidateDebts(debts); err != nil {
		return decimal.Zero, err
	}

	if monthlyIncome <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %s", domain.ErrNonPositiveIncome, monthlyIncome)
	}

	var total domain.Money
	for _, d := range debts {
		total += d.MinimumPayment
	}

	return total.Decimal().DivRound(monthlyIncome.Decimal(), ratioPlaces), nil
}
