package dto

import (
	"time"

	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/usecase"
)

// PeriodResponse is one simulated month for one debt. Month numbers are
// 1-based on the wire, matching payoff months in summaries.
type PeriodResponse struct {
	DebtID    string `json:"debt_id"`
	Month     int    `json:"month"`
	Payment   string `json:"payment"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
	Balance   string `json:"balance"`
}

// DebtSummaryResponse is the per-debt slice of a plan summary.
type DebtSummaryResponse struct {
	DebtID       string `json:"debt_id"`
	Name         string `json:"name,omitempty"`
	PayoffMonth  int    `json:"payoff_month"`
	PayoffDate   string `json:"payoff_date,omitempty"`
	InterestPaid string `json:"interest_paid"`
	TotalPaid    string `json:"total_paid"`
}

// BlockedDebtResponse marks a debt excluded from simulation because its
// minimum payment cannot cover the monthly interest.
type BlockedDebtResponse struct {
	DebtID          string `json:"debt_id"`
	MonthlyInterest string `json:"monthly_interest"`
	MinimumPayment  string `json:"minimum_payment"`
}

// PlanSummaryResponse represents a plan summary in API responses.
type PlanSummaryResponse struct {
	Strategy          string                `json:"strategy"`
	Status            string                `json:"status"`
	MonthsToPayoff    int                   `json:"months_to_payoff"`
	DebtFreeDate      string                `json:"debt_free_date,omitempty"`
	TotalInterestPaid string                `json:"total_interest_paid"`
	TotalPaid         string                `json:"total_paid"`
	RemainingBalance  string                `json:"remaining_balance"`
	PayoffOrder       []DebtSummaryResponse `json:"payoff_order"`
	Blocked           []BlockedDebtResponse `json:"blocked,omitempty"`
}

// SummaryFromDomain converts a domain plan summary to a response.
func SummaryFromDomain(s *domain.PlanSummary) *PlanSummaryResponse {
	if s == nil {
		return nil
	}

	resp := &PlanSummaryResponse{
		Strategy:          s.Strategy.String(),
		Status:            s.Status.String(),
		MonthsToPayoff:    s.MonthsToPayoff,
		DebtFreeDate:      formatMonth(s.DebtFreeDate),
		TotalInterestPaid: s.TotalInterestPaid.String(),
		TotalPaid:         s.TotalPaid.String(),
		RemainingBalance:  s.RemainingBalance.String(),
		PayoffOrder:       make([]DebtSummaryResponse, len(s.PayoffOrder)),
	}

	for i, d := range s.PayoffOrder {
		resp.PayoffOrder[i] = DebtSummaryResponse{
			DebtID:       d.DebtID,
			Name:         d.Name,
			PayoffMonth:  d.PayoffMonth,
			PayoffDate:   formatMonth(d.PayoffDate),
			InterestPaid: d.InterestPaid.String(),
			TotalPaid:    d.TotalPaid.String(),
		}
	}

	for _, b := range s.Blocked {
		resp.Blocked = append(resp.Blocked, BlockedDebtResponse{
			DebtID:          b.DebtID,
			MonthlyInterest: b.MonthlyInterest.String(),
			MinimumPayment:  b.MinimumPayment.String(),
		})
	}

	return resp
}

// SimulateResponse represents a simulation result in API responses. The
// schedule is included only on request; it can run to hundreds of rows.
type SimulateResponse struct {
	Summary  *PlanSummaryResponse `json:"summary"`
	Schedule []PeriodResponse     `json:"schedule,omitempty"`
}

// SimulateFromResult converts a use case plan result to a response.
func SimulateFromResult(result *usecase.PlanResult, includeSchedule bool) *SimulateResponse {
	resp := &SimulateResponse{Summary: SummaryFromDomain(result.Summary)}

	if includeSchedule && result.Schedule != nil {
		resp.Schedule = make([]PeriodResponse, len(result.Schedule.Periods))
		for i, p := range result.Schedule.Periods {
			resp.Schedule[i] = PeriodResponse{
				DebtID:    p.DebtID,
				Month:     p.PeriodIndex + 1,
				Payment:   p.PaymentAmount.String(),
				Interest:  p.InterestPortion.String(),
				Principal: p.PrincipalPortion.String(),
				Balance:   p.EndingBalance.String(),
			}
		}
	}

	return resp
}

// OrderResponse represents a payoff order preview in API responses.
type OrderResponse struct {
	Strategy string   `json:"strategy"`
	Order    []string `json:"order"`
}

// CompareResponse represents a refinancing comparison in API responses.
type CompareResponse struct {
	TargetDebtID             string `json:"target_debt_id"`
	BaselineTotalInterest    string `json:"baseline_total_interest"`
	AlternativeTotalInterest string `json:"alternative_total_interest"`
	InterestSavings          string `json:"interest_savings"`
	BaselineMonths           int    `json:"baseline_months"`
	AlternativeMonths        int    `json:"alternative_months"`
	MonthsSaved              int    `json:"months_saved"`
	BaselineStatus           string `json:"baseline_status"`
	AlternativeStatus        string `json:"alternative_status"`
}

// CompareFromDomain converts a domain comparison to a response.
func CompareFromDomain(c *domain.RefinanceComparison) *CompareResponse {
	return &CompareResponse{
		TargetDebtID:             c.TargetDebtID,
		BaselineTotalInterest:    c.BaselineTotalInterest.String(),
		AlternativeTotalInterest: c.AlternativeTotalInterest.String(),
		InterestSavings:          c.InterestSavings.String(),
		BaselineMonths:           c.BaselineMonths,
		AlternativeMonths:        c.AlternativeMonths,
		MonthsSaved:              c.MonthsSaved,
		BaselineStatus:           c.BaselineStatus.String(),
		AlternativeStatus:        c.AlternativeStatus.String(),
	}
}

// RatioResponse represents a debt-to-income ratio in API responses.
type RatioResponse struct {
	Ratio string `json:"ratio"`
}

// SnapshotResponse represents a stored plan snapshot in API responses.
type SnapshotResponse struct {
	ID                string               `json:"id"`
	UserID            string               `json:"user_id"`
	Strategy          string               `json:"strategy"`
	MonthlyBudget     string               `json:"monthly_budget"`
	Status            string               `json:"status"`
	MonthsToPayoff    int                  `json:"months_to_payoff"`
	TotalInterestPaid string               `json:"total_interest_paid"`
	Summary           *PlanSummaryResponse `json:"summary,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// SnapshotFromDomain converts a domain snapshot to a response.
func SnapshotFromDomain(s *domain.PlanSnapshot) *SnapshotResponse {
	return &SnapshotResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		Strategy:          s.Strategy.String(),
		MonthlyBudget:     s.MonthlyBudget.String(),
		Status:            s.Status.String(),
		MonthsToPayoff:    s.MonthsToPayoff,
		TotalInterestPaid: s.TotalInterestPaid.String(),
		Summary:           SummaryFromDomain(s.Summary),
		CreatedAt:         s.CreatedAt,
	}
}

// SnapshotsFromDomain converts domain snapshots to responses.
func SnapshotsFromDomain(snapshots []*domain.PlanSnapshot) []*SnapshotResponse {
	result := make([]*SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = SnapshotFromDomain(s)
	}

	return result
}

// PlanHistoryResponse represents a page of stored snapshots.
type PlanHistoryResponse struct {
	Snapshots []*SnapshotResponse `json:"snapshots"`
	Count     int                 `json:"count"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func formatMonth(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(monthLayout)
}
