package domain

import (
	"fmt"
	"time"
)

// ScheduleStatus is the terminal state of a simulation run.
type ScheduleStatus int

const (
	// StatusComplete means every simulated debt reached zero balance.
	StatusComplete ScheduleStatus = iota
	// StatusStalled means the safety horizon was reached with balance
	// outstanding. This is a legitimate planning outcome, not an error.
	StatusStalled
	// StatusBlocked means at least one debt's minimum payment fails to cover
	// its monthly interest. The remaining debts are still simulated, but the
	// plan as a whole can never reach zero.
	StatusBlocked
)

// String returns the wire name of the status.
func (s ScheduleStatus) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusStalled:
		return "stalled"
	case StatusBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// ParseScheduleStatus maps a stored status name back onto the enum.
func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	switch s {
	case "complete":
		return StatusComplete, nil
	case "stalled":
		return StatusStalled, nil
	case "blocked":
		return StatusBlocked, nil
	default:
		return 0, fmt.Errorf("%w: unknown schedule status %q", ErrInvalidInput, s)
	}
}

// RepaymentPeriod is one simulated month for one debt. Immutable once emitted;
// append-only inside a schedule.
type RepaymentPeriod struct {
	DebtID           string
	PeriodIndex      int // 0-based
	PaymentAmount    Money
	InterestPortion  Money
	PrincipalPortion Money
	EndingBalance    Money
}

// PayoffEvent records the period in which a debt reached zero balance.
type PayoffEvent struct {
	DebtID      string
	PeriodIndex int
}

// BlockedDebt marks a non-amortizing debt that was excluded from a run because
// its minimum payment cannot cover the monthly interest.
type BlockedDebt struct {
	DebtID          string
	MonthlyInterest Money
	MinimumPayment  Money
}

// RepaymentSchedule is the full output of one simulation run. It is owned by
// the call that produced it and never mutated afterwards; comparisons are done
// by producing two schedules and diffing them.
type RepaymentSchedule struct {
	Strategy          Strategy
	StartMonth        time.Time // optional anchor for projecting dates; zero means unset
	Debts             []Debt    // validated input copy the run was produced from
	Periods           []RepaymentPeriod
	PayoffOrder       []PayoffEvent
	Blocked           []BlockedDebt
	Status            ScheduleStatus
	MonthsToPayoff    int   // months simulated until the last debt hit zero; the horizon when stalled, zero when blocked
	TotalInterestPaid Money
	TotalPaid         Money
	RemainingBalance  Money // zero only when Status is StatusComplete
}

// Reconcile verifies the schedule's internal accounting: every period's
// interest/principal split sums exactly to its payment, per-debt balances never
// increase, and the aggregate totals match the period rows. A schedule that
// fails reconciliation indicates a simulator bug, never bad user input.
func (s *RepaymentSchedule) Reconcile() error {
	var totalPaid, totalInterest Money

	lastBalance := make(map[string]Money, len(s.Debts))
	for _, d := range s.Debts {
		lastBalance[d.ID] = d.PrincipalBalance
	}

	for _, p := range s.Periods {
		if p.InterestPortion+p.PrincipalPortion != p.PaymentAmount {
			return fmt.Errorf("%w: period %d debt %s splits %s+%s != payment %s",
				ErrInconsistentSchedule, p.PeriodIndex, p.DebtID,
				p.InterestPortion, p.PrincipalPortion, p.PaymentAmount)
		}

		prev, ok := lastBalance[p.DebtID]
		if !ok {
			return fmt.Errorf("%w: period row for unknown debt %s", ErrInconsistentSchedule, p.DebtID)
		}

		if p.EndingBalance > prev {
			return fmt.Errorf("%w: debt %s balance grew from %s to %s in period %d",
				ErrInconsistentSchedule, p.DebtID, prev, p.EndingBalance, p.PeriodIndex)
		}

		lastBalance[p.DebtID] = p.EndingBalance
		totalPaid += p.PaymentAmount
		totalInterest += p.InterestPortion
	}

	if totalInterest != s.TotalInterestPaid {
		return fmt.Errorf("%w: total interest %s does not match period sum %s",
			ErrInconsistentSchedule, s.TotalInterestPaid, totalInterest)
	}

	if totalPaid != s.TotalPaid {
		return fmt.Errorf("%w: total paid %s does not match period sum %s",
			ErrInconsistentSchedule, s.TotalPaid, totalPaid)
	}

	return nil
}
