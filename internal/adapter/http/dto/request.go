package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/planner"
	"github.com/finvue/debtplan/internal/usecase"
)

// monthLayout is the wire format for month-precision dates.
const monthLayout = "2006-01"

// DebtRequest represents one debt in API requests. Monetary amounts travel as
// decimal strings in major units and are converted to cents exactly once here.
type DebtRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Balance        string `json:"balance"`
	APR            string `json:"apr"`
	MinimumPayment string `json:"minimum_payment"`
	TermMonths     int    `json:"term_months,omitempty"`
}

// ToDomain converts the request debt into its domain form.
func (r *DebtRequest) ToDomain() (domain.Debt, error) {
	balance, err := domain.MoneyFromString(r.Balance)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("debt %s balance: %w", r.ID, err)
	}

	minimum, err := domain.MoneyFromString(r.MinimumPayment)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("debt %s minimum payment: %w", r.ID, err)
	}

	apr, err := decimal.NewFromString(r.APR)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("debt %s: %w: invalid APR %q", r.ID, domain.ErrInvalidInput, r.APR)
	}

	return domain.Debt{
		ID:               r.ID,
		Name:             r.Name,
		PrincipalBalance: balance,
		APR:              apr,
		MinimumPayment:   minimum,
		TermMonths:       r.TermMonths,
	}, nil
}

// DebtsToDomain converts a request debt list into domain debts.
func DebtsToDomain(reqs []DebtRequest) ([]domain.Debt, error) {
	debts := make([]domain.Debt, len(reqs))
	for i, r := range reqs {
		d, err := r.ToDomain()
		if err != nil {
			return nil, err
		}

		debts[i] = d
	}

	return debts, nil
}

// HybridWeightsRequest overrides the hybrid strategy's score weights.
type HybridWeightsRequest struct {
	APR     float64 `json:"apr"`
	Balance float64 `json:"balance"`
}

func (r *HybridWeightsRequest) toPlanner() planner.HybridWeights {
	if r == nil {
		return planner.HybridWeights{}
	}

	return planner.HybridWeights{APR: r.APR, Balance: r.Balance}
}

// SimulateRequest represents a request to simulate a repayment plan.
type SimulateRequest struct {
	Debts           []DebtRequest         `json:"debts"`
	Strategy        string                `json:"strategy"`
	MonthlyBudget   string                `json:"monthly_budget"`
	HorizonMonths   int                   `json:"horizon_months,omitempty"`
	HybridWeights   *HybridWeightsRequest `json:"hybrid_weights,omitempty"`
	StartMonth      string                `json:"start_month,omitempty"` // "2026-01"
	IncludeSchedule bool                  `json:"include_schedule,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SimulateRequest) ToUseCaseInput() (usecase.PlanInput, error) {
	debts, err := DebtsToDomain(r.Debts)
	if err != nil {
		return usecase.PlanInput{}, err
	}

	strategy, err := domain.ParseStrategy(r.Strategy)
	if err != nil {
		return usecase.PlanInput{}, err
	}

	budget, err := domain.MoneyFromString(r.MonthlyBudget)
	if err != nil {
		return usecase.PlanInput{}, fmt.Errorf("monthly budget: %w", err)
	}

	start, err := ParseStartMonth(r.StartMonth)
	if err != nil {
		return usecase.PlanInput{}, err
	}

	return usecase.PlanInput{
		Debts:         debts,
		Strategy:      strategy,
		MonthlyBudget: budget,
		HorizonMonths: r.HorizonMonths,
		Hybrid:        r.HybridWeights.toPlanner(),
		StartMonth:    start,
	}, nil
}

// OrderRequest represents a request to preview a strategy's payoff order.
type OrderRequest struct {
	Debts         []DebtRequest         `json:"debts"`
	Strategy      string                `json:"strategy"`
	HybridWeights *HybridWeightsRequest `json:"hybrid_weights,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OrderRequest) ToUseCaseInput() (usecase.OrderInput, error) {
	debts, err := DebtsToDomain(r.Debts)
	if err != nil {
		return usecase.OrderInput{}, err
	}

	strategy, err := domain.ParseStrategy(r.Strategy)
	if err != nil {
		return usecase.OrderInput{}, err
	}

	return usecase.OrderInput{
		Debts:    debts,
		Strategy: strategy,
		Hybrid:   r.HybridWeights.toPlanner(),
	}, nil
}

// RefinanceOfferRequest is the alternative contract being evaluated.
type RefinanceOfferRequest struct {
	APR        string `json:"apr"`
	TermMonths int    `json:"term_months,omitempty"`
}

// CompareRequest represents a request to evaluate a refinancing offer.
type CompareRequest struct {
	Debts         []DebtRequest         `json:"debts"`
	TargetDebtID  string                `json:"target_debt_id"`
	Offer         RefinanceOfferRequest `json:"offer"`
	Strategy      string                `json:"strategy"`
	MonthlyBudget string                `json:"monthly_budget"`
}

// ToUseCaseInput converts to use case input.
func (r *CompareRequest) ToUseCaseInput() (usecase.CompareInput, error) {
	debts, err := DebtsToDomain(r.Debts)
	if err != nil {
		return usecase.CompareInput{}, err
	}

	strategy, err := domain.ParseStrategy(r.Strategy)
	if err != nil {
		return usecase.CompareInput{}, err
	}

	budget, err := domain.MoneyFromString(r.MonthlyBudget)
	if err != nil {
		return usecase.CompareInput{}, fmt.Errorf("monthly budget: %w", err)
	}

	offerAPR, err := decimal.NewFromString(r.Offer.APR)
	if err != nil {
		return usecase.CompareInput{}, fmt.Errorf("%w: invalid offer APR %q", domain.ErrInvalidInput, r.Offer.APR)
	}

	return usecase.CompareInput{
		Debts:         debts,
		TargetDebtID:  r.TargetDebtID,
		Offer:         planner.RefinanceOffer{APR: offerAPR, TermMonths: r.Offer.TermMonths},
		Strategy:      strategy,
		MonthlyBudget: budget,
	}, nil
}

// RatioRequest represents a request for the debt-to-income ratio.
type RatioRequest struct {
	Debts         []DebtRequest `json:"debts"`
	MonthlyIncome string        `json:"monthly_income"`
}

// ToUseCaseInput converts to use case input.
func (r *RatioRequest) ToUseCaseInput() (usecase.RatioInput, error) {
	debts, err := DebtsToDomain(r.Debts)
	if err != nil {
		return usecase.RatioInput{}, err
	}

	income, err := domain.MoneyFromString(r.MonthlyIncome)
	if err != nil {
		return usecase.RatioInput{}, fmt.Errorf("monthly income: %w", err)
	}

	return usecase.RatioInput{Debts: debts, MonthlyIncome: income}, nil
}

// ParseStartMonth parses an optional YYYY-MM month anchor. Empty input means
// the plan stays undated.
func ParseStartMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start month must be YYYY-MM, got %q", domain.ErrInvalidInput, s)
	}

	return t, nil
}
