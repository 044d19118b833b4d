package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/finvue/debtplan/internal/domain"
)

// DefaultHorizonMonths bounds a simulation run at 50 years.
const DefaultHorizonMonths = 600

// SimulationOptions tunes a single run. The zero value picks the default
// horizon and hybrid weights and leaves the schedule undated.
type SimulationOptions struct {
	// HorizonMonths caps the number of simulated periods. Zero means
	// DefaultHorizonMonths; values above domain.MaxTermMonths are rejected.
	HorizonMonths int
	// Hybrid overrides the hybrid strategy's score weights. Ignored for
	// avalanche and snowball. The zero value means DefaultHybridWeights.
	Hybrid HybridWeights
	// StartMonth anchors period indexes to calendar months in summaries.
	// The zero value leaves the schedule undated.
	StartMonth time.Time
}

// debtRunner is the per-debt working state of one simulation run.
type debtRunner struct {
	debt    domain.Debt
	balance domain.Money
	row     *domain.RepaymentPeriod // row under construction for the current period
	paidAt  int                     // period the debt hit zero, -1 while outstanding
}

// Simulate drives the month-by-month repayment simulation and returns the full
// schedule. Each period applies every outstanding debt's contractual minimum,
// then pours the surplus pool (discretionary budget, rolled-over minimums of
// already-paid debts, and any final-payment overshoot) into the front of the
// strategy order.
//
// The run is pure: inputs are copied, nothing shared is touched, and identical
// inputs produce identical schedules.
func Simulate(debts []domain.Debt, strategy domain.Strategy, budget domain.Money, opts SimulationOptions) (*domain.RepaymentSchedule, error) {
	if err := domain.ValidateDebts(debts); err != nil {
		return nil, err
	}

	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStrategy, int(strategy))
	}

	if err := domain.ValidateBudget(budget); err != nil {
		return nil, err
	}

	horizon := opts.HorizonMonths
	if horizon == 0 {
		horizon = DefaultHorizonMonths
	}

	if horizon < 0 || horizon > domain.MaxTermMonths {
		return nil, fmt.Errorf("%w: horizon must be between 1 and %d months, got %d",
			domain.ErrInvalidInput, domain.MaxTermMonths, opts.HorizonMonths)
	}

	weights := opts.Hybrid
	if weights == (HybridWeights{}) {
		weights = DefaultHybridWeights
	}

	if strategy == domain.StrategyHybrid {
		if err := weights.validate(); err != nil {
			return nil, err
		}
	}

	schedule := &domain.RepaymentSchedule{
		Strategy:   strategy,
		StartMonth: opts.StartMonth,
		Debts:      domain.CloneDebts(debts),
	}

	// Screen out non-amortizing debts up front. Interest only shrinks as a
	// balance shrinks, so a minimum that covers period-zero interest covers
	// every later period too.
	blocked := make(map[string]bool)
	for _, d := range schedule.Debts {
		var insufficient *domain.InsufficientPaymentError
		if !errors.As(CheckAmortizing(d), &insufficient) {
			continue
		}

		schedule.Blocked = append(schedule.Blocked, domain.BlockedDebt{
			DebtID:          insufficient.DebtID,
			MonthlyInterest: insufficient.MonthlyInterest,
			MinimumPayment:  insufficient.MinimumPayment,
		})
		blocked[d.ID] = true
	}

	byID := make(map[string]domain.Debt, len(schedule.Debts))
	for _, d := range schedule.Debts {
		byID[d.ID] = d
	}

	// The strategy order is computed once; debts that pay off simply drop
	// out of the remaining order rather than triggering a re-sort.
	line := make([]*debtRunner, 0, len(schedule.Debts))
	for _, id := range orderDebtIDs(schedule.Debts, strategy, weights) {
		d := byID[id]
		if blocked[id] || !d.Outstanding() {
			continue
		}

		line = append(line, &debtRunner{debt: d, balance: d.PrincipalBalance, paidAt: -1})
	}

	complete := len(line) == 0
	months := 0

	for period := 0; period < horizon && !complete; period++ {
		// Surplus pool for this period: the discretionary budget plus the
		// minimums freed by debts that zeroed in earlier periods. Final
		// minimum payments below may return overshoot into it as well.
		surplus := budget
		for _, r := range line {
			if r.balance == 0 {
				surplus += r.debt.MinimumPayment
			}
		}

		// Contractual minimums for every outstanding debt.
		for _, r := range line {
			if r.balance == 0 {
				continue
			}

			outcome, err := ApplyPeriod(r.balance, r.debt.APR, r.debt.MinimumPayment)
			if err != nil {
				return nil, err
			}

			r.balance = outcome.NewBalance
			surplus += outcome.Unused

			if applied := outcome.Applied(); applied > 0 {
				r.row = &domain.RepaymentPeriod{
					DebtID:           r.debt.ID,
					PeriodIndex:      period,
					PaymentAmount:    applied,
					InterestPortion:  outcome.Interest,
					PrincipalPortion: outcome.Principal,
					EndingBalance:    outcome.NewBalance,
				}
			}
		}

		// Walk the strategy order front to back, pouring the surplus into
		// the first debt still standing. Interest for the period has already
		// been charged, so extra payment is pure principal.
		for _, r := range line {
			if surplus == 0 {
				break
			}

			if r.balance == 0 {
				continue
			}

			extra := surplus
			if extra > r.balance {
				extra = r.balance
			}

			r.balance -= extra
			surplus -= extra

			if r.row == nil {
				r.row = &domain.RepaymentPeriod{DebtID: r.debt.ID, PeriodIndex: period}
			}

			r.row.PaymentAmount += extra
			r.row.PrincipalPortion += extra
			r.row.EndingBalance = r.balance
		}

		// Emit rows and payoff events, both in strategy order.
		complete = true
		for _, r := range line {
			if r.row != nil {
				schedule.Periods = append(schedule.Periods, *r.row)
				schedule.TotalInterestPaid += r.row.InterestPortion
				schedule.TotalPaid += r.row.PaymentAmount
				r.row = nil
			}

			switch {
			case r.balance > 0:
				complete = false
			case r.paidAt < 0:
				r.paidAt = period
				schedule.PayoffOrder = append(schedule.PayoffOrder, domain.PayoffEvent{
					DebtID:      r.debt.ID,
					PeriodIndex: period,
				})
			}
		}

		months = period + 1
	}

	for _, r := range line {
		schedule.RemainingBalance += r.balance
	}
	for _, b := range schedule.Blocked {
		schedule.RemainingBalance += byID[b.DebtID].PrincipalBalance
	}

	switch {
	case len(schedule.Blocked) > 0:
		schedule.Status = domain.StatusBlocked
	case complete:
		schedule.Status = domain.StatusComplete
		schedule.MonthsToPayoff = months
	default:
		schedule.Status = domain.StatusStalled
		schedule.MonthsToPayoff = months
	}

	return schedule, nil
}
