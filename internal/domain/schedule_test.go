package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func reconcilableSchedule() *RepaymentSchedule {
	return &RepaymentSchedule{
		Strategy: StrategyAvalanche,
		Debts: []Debt{{
			ID:               "card-a",
			PrincipalBalance: 10000,
			APR:              decimal.RequireFromString("0.12"),
			MinimumPayment:   5100,
		}},
		Periods: []RepaymentPeriod{
			{DebtID: "card-a", PeriodIndex: 0, PaymentAmount: 5100, InterestPortion: 100, PrincipalPortion: 5000, EndingBalance: 5000},
			{DebtID: "card-a", PeriodIndex: 1, PaymentAmount: 5050, InterestPortion: 50, PrincipalPortion: 5000, EndingBalance: 0},
		},
		PayoffOrder:       []PayoffEvent{{DebtID: "card-a", PeriodIndex: 1}},
		Status:            StatusComplete,
		MonthsToPayoff:    2,
		TotalInterestPaid: 150,
		TotalPaid:         10150,
	}
}

func TestScheduleReconcile(t *testing.T) {
	t.Parallel()

	t.Run("consistent schedule passes", func(t *testing.T) {
		if err := reconcilableSchedule().Reconcile(); err != nil {
			t.Fatalf("expected clean reconciliation, got %v", err)
		}
	})

	t.Run("broken conservation detected", func(t *testing.T) {
		s := reconcilableSchedule()
		s.Periods[0].InterestPortion++

		if err := s.Reconcile(); !errors.Is(err, ErrInconsistentSchedule) {
			t.Fatalf("expected ErrInconsistentSchedule, got %v", err)
		}
	})

	t.Run("growing balance detected", func(t *testing.T) {
		s := reconcilableSchedule()
		s.Periods[1].EndingBalance = 20000
		s.Periods[1].PrincipalPortion = 0
		s.Periods[1].PaymentAmount = s.Periods[1].InterestPortion

		if err := s.Reconcile(); !errors.Is(err, ErrInconsistentSchedule) {
			t.Fatalf("expected ErrInconsistentSchedule, got %v", err)
		}
	})

	t.Run("unknown debt detected", func(t *testing.T) {
		s := reconcilableSchedule()
		s.Periods[0].DebtID = "phantom"
		// keep the row internally consistent so only the identity check trips
		if err := s.Reconcile(); !errors.Is(err, ErrInconsistentSchedule) {
			t.Fatalf("expected ErrInconsistentSchedule, got %v", err)
		}
	})

	t.Run("total mismatch detected", func(t *testing.T) {
		s := reconcilableSchedule()
		s.TotalInterestPaid = 9999

		if err := s.Reconcile(); !errors.Is(err, ErrInconsistentSchedule) {
			t.Fatalf("expected ErrInconsistentSchedule, got %v", err)
		}
	})
}
