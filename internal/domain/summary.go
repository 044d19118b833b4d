package domain

import "time"

// DebtSummary is the per-debt slice of a plan summary, listed in payoff order.
type DebtSummary struct {
	DebtID       string
	Name         string
	PayoffMonth  int       // 1-based month count at which the balance hit zero; 0 if it never did
	PayoffDate   time.Time // projected from the schedule's start month; zero when unanchored
	InterestPaid Money
	TotalPaid    Money
}

// PlanSummary is the caller-facing reduction of a repayment schedule.
type PlanSummary struct {
	Strategy          Strategy
	Status            ScheduleStatus
	MonthsToPayoff    int
	DebtFreeDate      time.Time // zero when the schedule is unanchored
	TotalInterestPaid Money
	TotalPaid         Money
	PayoffOrder       []DebtSummary
	Blocked           []BlockedDebt
	RemainingBalance  Money
}

// RefinanceComparison reports the delta between a baseline simulation and one
// with a refinancing offer substituted on a single debt. Negative savings are
// meaningful (the offer is worse) and are never clamped.
type RefinanceComparison struct {
	TargetDebtID             string
	BaselineTotalInterest    Money
	AlternativeTotalInterest Money
	InterestSavings          Money
	BaselineMonths           int
	AlternativeMonths        int
	MonthsSaved              int
	BaselineStatus           ScheduleStatus
	AlternativeStatus        ScheduleStatus
}

// PlanSnapshot is a persisted point-in-time plan computed for a user.
type PlanSnapshot struct {
	ID                string
	UserID            string
	Strategy          Strategy
	MonthlyBudget     Money
	Status            ScheduleStatus
	MonthsToPayoff    int
	TotalInterestPaid Money
	Summary           *PlanSummary
	CreatedAt         time.Time
}
