package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/adapter/http/dto"
	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/usecase"
)

// PlannerService defines the behavior needed by PlannerHandler.
type PlannerService interface {
	PlanFromDebts(ctx context.Context, input usecase.PlanInput) (*usecase.PlanResult, error)
	PlanForUser(ctx context.Context, input usecase.PlanForUserInput) (*domain.PlanSnapshot, error)
	LatestPlan(ctx context.Context, userID string) (*domain.PlanSnapshot, error)
	PlanHistory(ctx context.Context, input usecase.PlanHistoryInput) ([]*domain.PlanSnapshot, error)
	CompareRefinancing(ctx context.Context, input usecase.CompareInput) (*domain.RefinanceComparison, error)
	DebtToIncome(ctx context.Context, input usecase.RatioInput) (decimal.Decimal, error)
	PreviewOrder(ctx context.Context, input usecase.OrderInput) ([]string, error)
}

// PlannerHandler handles repayment planning HTTP requests.
type PlannerHandler struct {
	plannerUC PlannerService
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerUC PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerUC: plannerUC}
}

// Simulate runs a repayment simulation over caller-supplied debts.
func (h *PlannerHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid plan request", err.Error())
		return
	}

	result, err := h.plannerUC.PlanFromDebts(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to simulate plan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SimulateFromResult(result, req.IncludeSchedule))
}

// PreviewOrder returns the order in which a strategy would target the debts.
func (h *PlannerHandler) PreviewOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid order request", err.Error())
		return
	}

	order, err := h.plannerUC.PreviewOrder(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute payoff order", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderResponse{Strategy: req.Strategy, Order: order})
}

// CompareRefinancing evaluates a refinancing offer against the baseline plan.
func (h *PlannerHandler) CompareRefinancing(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid comparison request", err.Error())
		return
	}

	comparison, err := h.plannerUC.CompareRefinancing(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compare refinancing", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CompareFromDomain(comparison))
}

// DebtToIncome reports the ratio of minimum payments to monthly income.
func (h *PlannerHandler) DebtToIncome(w http.ResponseWriter, r *http.Request) {
	var req dto.RatioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, mapDomainError(err), "invalid ratio request", err.Error())
		return
	}

	ratio, err := h.plannerUC.DebtToIncome(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute ratio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatioResponse{Ratio: ratio.StringFixed(4)})
}

// PlanForUser computes a plan from the user's stored debts. Without strategy
// and budget query parameters it returns the most recently stored snapshot
// instead of computing a fresh one.
func (h *PlannerHandler) PlanForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	q := r.URL.Query()
	strategyParam := q.Get("strategy")
	budgetParam := q.Get("budget")

	if strategyParam == "" && budgetParam == "" {
		snapshot, err := h.plannerUC.LatestPlan(r.Context(), userID)
		if err != nil {
			writeError(w, mapDomainError(err), "failed to load latest plan", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))

		return
	}

	strategy, err := domain.ParseStrategy(strategyParam)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid strategy", err.Error())
		return
	}

	budget, err := domain.MoneyFromString(budgetParam)
	if err != nil {
		writeError(w, mapDomainError(err), "invalid budget", err.Error())
		return
	}

	input := usecase.PlanForUserInput{
		UserID:        userID,
		Strategy:      strategy,
		MonthlyBudget: budget,
	}

	if startParam := q.Get("start_month"); startParam != "" {
		start, err := dto.ParseStartMonth(startParam)
		if err != nil {
			writeError(w, mapDomainError(err), "invalid start month", err.Error())
			return
		}

		input.StartMonth = start
	}

	snapshot, err := h.plannerUC.PlanForUser(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to plan for user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotFromDomain(snapshot))
}

// PlanHistory lists a user's stored snapshots, newest first.
func (h *PlannerHandler) PlanHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	snapshots, err := h.plannerUC.PlanHistory(r.Context(), usecase.PlanHistoryInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list plan history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PlanHistoryResponse{
		Snapshots: dto.SnapshotsFromDomain(snapshots),
		Count:     len(snapshots),
	})
}
