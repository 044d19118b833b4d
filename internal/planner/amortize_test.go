package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
)

func apr(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyInterest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance domain.Money
		apr     string
		want    domain.Money
	}{
		{name: "zero balance", balance: 0, apr: "0.24", want: 0},
		{name: "zero rate", balance: 200000, apr: "0", want: 0},
		{name: "24 percent on 2000", balance: 200000, apr: "0.24", want: 4000},
		{name: "12 percent on 5000", balance: 500000, apr: "0.12", want: 5000},
		{name: "rounds down below half a cent", balance: 700, apr: "0.02", want: 1},
		{name: "rounds up above half a cent", balance: 1001, apr: "0.1899", want: 16},
		{name: "rounds half away from zero", balance: 600, apr: "0.01", want: 1},
		{name: "tiny balance rounds to nothing", balance: 100, apr: "0.02", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyInterest(tt.balance, apr(tt.apr)); got != tt.want {
				t.Errorf("MonthlyInterest(%d, %s) = %d, want %d", tt.balance, tt.apr, got, tt.want)
			}
		})
	}
}

func TestApplyPeriod(t *testing.T) {
	t.Parallel()

	t.Run("splits payment into interest and principal", func(t *testing.T) {
		got, err := ApplyPeriod(200000, apr("0.24"), 25000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := PeriodOutcome{Interest: 4000, Principal: 21000, NewBalance: 179000}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("final payment overshoot is returned unused", func(t *testing.T) {
		got, err := ApplyPeriod(3000, apr("0.24"), 10000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := PeriodOutcome{Interest: 60, Principal: 3000, NewBalance: 0, Unused: 6940}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("interest only payment leaves balance flat", func(t *testing.T) {
		got, err := ApplyPeriod(1000000, apr("0.12"), 10000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := PeriodOutcome{Interest: 10000, Principal: 0, NewBalance: 1000000}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("zero balance passes the payment through", func(t *testing.T) {
		got, err := ApplyPeriod(0, apr("0.24"), 5000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got != (PeriodOutcome{Unused: 5000}) {
			t.Errorf("got %+v, want unused 5000", got)
		}
	})

	t.Run("payment below interest", func(t *testing.T) {
		_, err := ApplyPeriod(1000000, apr("0.24"), 10000)
		if !errors.Is(err, domain.ErrInsufficientPayment) {
			t.Errorf("expected ErrInsufficientPayment, got %v", err)
		}
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := ApplyPeriod(-1, apr("0.24"), 5000)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative payment", func(t *testing.T) {
		_, err := ApplyPeriod(1000, apr("0.24"), -1)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("split always sums to the applied payment", func(t *testing.T) {
		balances := []domain.Money{1, 99, 1500, 123456, 1000000, 99999999}
		rates := []string{"0", "0.0499", "0.1899", "0.24", "0.2999"}

		for _, balance := range balances {
			for _, rate := range rates {
				payment := MonthlyInterest(balance, apr(rate)) + balance/10 + 1

				got, err := ApplyPeriod(balance, apr(rate), payment)
				if err != nil {
					t.Fatalf("ApplyPeriod(%d, %s, %d): %v", balance, rate, payment, err)
				}

				if got.Interest+got.Principal != got.Applied() {
					t.Errorf("ApplyPeriod(%d, %s, %d): split %d+%d != applied %d",
						balance, rate, payment, got.Interest, got.Principal, got.Applied())
				}

				if got.Applied()+got.Unused != payment {
					t.Errorf("ApplyPeriod(%d, %s, %d): applied %d + unused %d != payment %d",
						balance, rate, payment, got.Applied(), got.Unused, payment)
				}

				if got.NewBalance != balance-got.Principal {
					t.Errorf("ApplyPeriod(%d, %s, %d): new balance %d, want %d",
						balance, rate, payment, got.NewBalance, balance-got.Principal)
				}
			}
		}
	})
}

func TestCheckAmortizing(t *testing.T) {
	t.Parallel()

	t.Run("healthy debt", func(t *testing.T) {
		d := domain.Debt{ID: "visa", PrincipalBalance: 200000, APR: apr("0.24"), MinimumPayment: 5000}
		if err := CheckAmortizing(d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid off debt never blocks", func(t *testing.T) {
		d := domain.Debt{ID: "visa", PrincipalBalance: 0, APR: apr("0.24"), MinimumPayment: 0}
		if err := CheckAmortizing(d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("minimum below interest is reported per debt", func(t *testing.T) {
		d := domain.Debt{ID: "visa", PrincipalBalance: 1000000, APR: apr("0.24"), MinimumPayment: 10000}

		err := CheckAmortizing(d)
		if !errors.Is(err, domain.ErrInsufficientPayment) {
			t.Fatalf("expected ErrInsufficientPayment, got %v", err)
		}

		var insufficient *domain.InsufficientPaymentError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientPaymentError, got %T", err)
		}

		if insufficient.DebtID != "visa" {
			t.Errorf("debt ID = %q, want visa", insufficient.DebtID)
		}
		if insufficient.MonthlyInterest != 20000 {
			t.Errorf("monthly interest = %d, want 20000", insufficient.MonthlyInterest)
		}
		if insufficient.MinimumPayment != 10000 {
			t.Errorf("minimum payment = %d, want 10000", insufficient.MinimumPayment)
		}
	})
}

func TestAnnuityPayment(t *testing.T) {
	t.Parallel()

	t.Run("zero balance", func(t *testing.T) {
		if got := AnnuityPayment(0, apr("0.12"), 24); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("zero term", func(t *testing.T) {
		if got := AnnuityPayment(10000, apr("0.12"), 0); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("zero rate splits evenly", func(t *testing.T) {
		if got := AnnuityPayment(10000, decimal.Zero, 4); got != 2500 {
			t.Errorf("got %d, want 2500", got)
		}
	})

	t.Run("zero rate rounds up", func(t *testing.T) {
		if got := AnnuityPayment(10000, decimal.Zero, 3); got != 3334 {
			t.Errorf("got %d, want 3334", got)
		}
	})

	t.Run("single period repays balance plus one month of interest", func(t *testing.T) {
		if got := AnnuityPayment(120000, apr("0.12"), 1); got != 121200 {
			t.Errorf("got %d, want 121200", got)
		}
	})

	t.Run("payment always covers monthly interest", func(t *testing.T) {
		balances := []domain.Money{10000, 1000000, 50000000}
		rates := []string{"0.0399", "0.12", "0.1899", "0.29"}
		terms := []int{6, 24, 120, 360}

		for _, balance := range balances {
			for _, rate := range rates {
				for _, term := range terms {
					payment := AnnuityPayment(balance, apr(rate), term)
					if interest := MonthlyInterest(balance, apr(rate)); payment <= interest {
						t.Errorf("AnnuityPayment(%d, %s, %d) = %d, not above interest %d",
							balance, rate, term, payment, interest)
					}
				}
			}
		}
	})
}

func TestAnnuityPayment_AmortizesInExactlyTerm(t *testing.T) {
	t.Parallel()

	rates := []string{"0.06", "0.18", "0.29"}
	terms := []int{6, 24, 120}

	for _, rate := range rates {
		for _, term := range terms {
			t.Run(fmt.Sprintf("%s over %d months", rate, term), func(t *testing.T) {
				debt := domain.Debt{
					ID:               "loan",
					PrincipalBalance: 1000000,
					APR:              apr(rate),
					MinimumPayment:   AnnuityPayment(1000000, apr(rate), term),
					TermMonths:       term,
				}

				schedule, err := Simulate([]domain.Debt{debt}, domain.StrategyAvalanche, 0, SimulationOptions{})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if schedule.Status != domain.StatusComplete {
					t.Fatalf("status = %s, want complete", schedule.Status)
				}

				if schedule.MonthsToPayoff != term {
					t.Errorf("months to payoff = %d, want %d", schedule.MonthsToPayoff, term)
				}
			})
		}
	}
}
