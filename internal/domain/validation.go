package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDebtsPerPlan = 50
	MaxTermMonths   = 600 // 50 years
	MaxIDLength     = 64
	MaxNameLength   = 255
)

// MaxBalance bounds a single debt at 100 million in major units.
const MaxBalance Money = 100_000_000_00

// MaxAPR bounds the annual rate at 1000%.
var MaxAPR = decimal.NewFromInt(10)

// ValidateDebt checks a single debt's shape. Whether the minimum payment can
// actually amortize the balance is the simulator's call, not input validation.
func ValidateDebt(d Debt) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: debt ID cannot be empty", ErrInvalidInput)
	}

	if len(d.ID) > MaxIDLength {
		return fmt.Errorf("%w: debt ID exceeds %d characters", ErrInvalidInput, MaxIDLength)
	}

	if len(d.Name) > MaxNameLength {
		return fmt.Errorf("%w: debt %s: name exceeds %d characters", ErrInvalidInput, d.ID, MaxNameLength)
	}

	if d.PrincipalBalance.IsNegative() {
		return fmt.Errorf("%w: debt %s: balance must be non-negative", ErrInvalidInput, d.ID)
	}

	if d.PrincipalBalance > MaxBalance {
		return fmt.Errorf("%w: debt %s: balance exceeds maximum %s", ErrInvalidInput, d.ID, MaxBalance)
	}

	if d.APR.IsNegative() {
		return fmt.Errorf("%w: debt %s: APR must be non-negative", ErrInvalidInput, d.ID)
	}

	if d.APR.GreaterThan(MaxAPR) {
		return fmt.Errorf("%w: debt %s: APR exceeds maximum %s", ErrInvalidInput, d.ID, MaxAPR)
	}

	if d.MinimumPayment.IsNegative() {
		return fmt.Errorf("%w: debt %s: minimum payment must be non-negative", ErrInvalidInput, d.ID)
	}

	if d.TermMonths < 0 || d.TermMonths > MaxTermMonths {
		return fmt.Errorf("%w: debt %s: term must be between 0 and %d months", ErrInvalidInput, d.ID, MaxTermMonths)
	}

	return nil
}

// ValidateDebts checks the debt set supplied to a planning run.
func ValidateDebts(debts []Debt) error {
	if len(debts) == 0 {
		return fmt.Errorf("%w: debt list cannot be empty", ErrInvalidInput)
	}

	if len(debts) > MaxDebtsPerPlan {
		return fmt.Errorf("%w: debt count %d exceeds maximum %d", ErrInvalidInput, len(debts), MaxDebtsPerPlan)
	}

	seen := make(map[string]bool, len(debts))
	for _, d := range debts {
		if err := ValidateDebt(d); err != nil {
			return err
		}

		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate debt ID %q", ErrInvalidInput, d.ID)
		}
		seen[d.ID] = true
	}

	return nil
}

// ValidateBudget checks a discretionary monthly budget. Zero is a valid
// minimum-payments-only plan; negative is rejected.
func ValidateBudget(budget Money) error {
	if budget.IsNegative() {
		return fmt.Errorf("%w: discretionary budget must be non-negative", ErrInvalidInput)
	}

	return nil
}
