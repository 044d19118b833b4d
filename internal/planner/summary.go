package planner

import (
	"github.com/finvue/debtplan/internal/domain"
)

// Summarize reduces a raw schedule to the caller-facing plan summary: months
// to debt-free, per-debt totals in payoff order, and projected dates when the
// schedule is anchored to a start month. A nil schedule yields a nil summary.
func Summarize(s *domain.RepaymentSchedule) *domain.PlanSummary {
	if s == nil {
		return nil
	}

	type tally struct {
		interest domain.Money
		paid     domain.Money
	}

	tallies := make(map[string]*tally, len(s.Debts))
	for _, p := range s.Periods {
		t := tallies[p.DebtID]
		if t == nil {
			t = &tally{}
			tallies[p.DebtID] = t
		}

		t.interest += p.InterestPortion
		t.paid += p.PaymentAmount
	}

	names := make(map[string]string, len(s.Debts))
	for _, d := range s.Debts {
		names[d.ID] = d.Name
	}

	summary := &domain.PlanSummary{
		Strategy:          s.Strategy,
		Status:            s.Status,
		MonthsToPayoff:    s.MonthsToPayoff,
		TotalInterestPaid: s.TotalInterestPaid,
		TotalPaid:         s.TotalPaid,
		RemainingBalance:  s.RemainingBalance,
		Blocked:           append([]domain.BlockedDebt(nil), s.Blocked...),
	}

	paid := make(map[string]bool, len(s.PayoffOrder))
	for _, ev := range s.PayoffOrder {
		paid[ev.DebtID] = true

		entry := domain.DebtSummary{
			DebtID:      ev.DebtID,
			Name:        names[ev.DebtID],
			PayoffMonth: ev.PeriodIndex + 1,
		}

		if t := tallies[ev.DebtID]; t != nil {
			entry.InterestPaid = t.interest
			entry.TotalPaid = t.paid
		}

		if !s.StartMonth.IsZero() {
			entry.PayoffDate = s.StartMonth.AddDate(0, ev.PeriodIndex, 0)
		}

		summary.PayoffOrder = append(summary.PayoffOrder, entry)
	}

	// Debts that never reached zero keep input order and a zero payoff month.
	for _, d := range s.Debts {
		if paid[d.ID] {
			continue
		}

		entry := domain.DebtSummary{DebtID: d.ID, Name: d.Name}
		if t := tallies[d.ID]; t != nil {
			entry.InterestPaid = t.interest
			entry.TotalPaid = t.paid
		}

		summary.PayoffOrder = append(summary.PayoffOrder, entry)
	}

	if !s.StartMonth.IsZero() && s.Status == domain.StatusComplete {
		if s.MonthsToPayoff > 0 {
			summary.DebtFreeDate = s.StartMonth.AddDate(0, s.MonthsToPayoff-1, 0)
		} else {
			summary.DebtFreeDate = s.StartMonth
		}
	}

	return summary
}
