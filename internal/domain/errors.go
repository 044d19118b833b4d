package domain

import (
	"errors"
	"fmt"
)

var (
	// Planner input errors
	ErrInvalidInput    = errors.New("invalid planner input")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrDebtNotFound    = errors.New("debt not found")

	// Simulation outcomes
	ErrInsufficientPayment  = errors.New("minimum payment does not cover monthly interest")
	ErrInconsistentSchedule = errors.New("schedule failed reconciliation")

	// Ratio evaluator
	ErrNonPositiveIncome = errors.New("monthly income must be positive")

	// Persistence errors
	ErrSnapshotNotFound = errors.New("plan snapshot not found")
)

// InsufficientPaymentError identifies a debt whose contractual minimum cannot
// cover its monthly interest. It is reported per-debt and does not abort
// simulation of the other debts.
type InsufficientPaymentError struct {
	DebtID          string
	MonthlyInterest Money
	MinimumPayment  Money
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("debt %s: minimum payment %s does not cover monthly interest %s",
		e.DebtID, e.MinimumPayment, e.MonthlyInterest)
}

// Unwrap lets errors.Is match the sentinel.
func (e *InsufficientPaymentError) Unwrap() error {
	return ErrInsufficientPayment
}
