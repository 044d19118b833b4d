package planner

import (
	"errors"
	"testing"

	"github.com/finvue/debtplan/internal/domain"
)

func TestDebtToIncomeRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		debts  []domain.Debt
		income domain.Money
		want   string
	}{
		{
			name: "simple ratio",
			debts: []domain.Debt{
				testDebt("card", 200000, "0.24", 5000),
				testDebt("loan", 500000, "0.12", 10000),
			},
			income: 100000,
			want:   "0.15",
		},
		{
			name: "rounded to four places",
			debts: []domain.Debt{
				testDebt("card", 200000, "0.24", 12345),
			},
			income: 99999,
			want:   "0.1235",
		},
		{
			name: "paid off debts still count their minimums",
			debts: []domain.Debt{
				testDebt("done", 0, "0.24", 5000),
				testDebt("open", 100000, "0.12", 5000),
			},
			income: 100000,
			want:   "0.1",
		},
		{
			name: "over-extended borrower exceeds one",
			debts: []domain.Debt{
				testDebt("card", 200000, "0.24", 150000),
			},
			income: 100000,
			want:   "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DebtToIncomeRatio(tt.debts, tt.income)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Equal(apr(tt.want)) {
				t.Errorf("ratio = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDebtToIncomeRatio_Errors(t *testing.T) {
	t.Parallel()

	valid := []domain.Debt{testDebt("card", 200000, "0.24", 5000)}

	t.Run("zero income", func(t *testing.T) {
		_, err := DebtToIncomeRatio(valid, 0)
		if !errors.Is(err, domain.ErrNonPositiveIncome) {
			t.Errorf("expected ErrNonPositiveIncome, got %v", err)
		}
	})

	t.Run("negative income", func(t *testing.T) {
		_, err := DebtToIncomeRatio(valid, -100000)
		if !errors.Is(err, domain.ErrNonPositiveIncome) {
			t.Errorf("expected ErrNonPositiveIncome, got %v", err)
		}
	})

	t.Run("empty debt list", func(t *testing.T) {
		_, err := DebtToIncomeRatio(nil, 100000)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
