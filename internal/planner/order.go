package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/finvue/debtplan/internal/domain"
)

// HybridWeights blends rate and balance into the hybrid ordering score. Both
// components are min-max normalized across the debt set being planned, so the
// weights express a pure trade-off between chasing rate and chasing quick wins.
type HybridWeights struct {
	APR     float64
	Balance float64
}

// DefaultHybridWeights favors rate over balance 60/40. The split is a product
// default, not a derived constant; callers wanting a different trade-off pass
// their own weights through SimulationOptions.
var DefaultHybridWeights = HybridWeights{APR: 0.6, Balance: 0.4}

func (w HybridWeights) validate() error {
	if w.APR < 0 || w.Balance < 0 {
		return fmt.Errorf("%w: hybrid weights must be non-negative", domain.ErrInvalidInput)
	}

	if math.Abs(w.APR+w.Balance-1) > 1e-9 {
		return fmt.Errorf("%w: hybrid weights must sum to 1, got %g", domain.ErrInvalidInput, w.APR+w.Balance)
	}

	return nil
}

// Order produces the total order in which debts receive surplus payment under
// the given strategy, using the default hybrid weights. Tie-breaks are fully
// deterministic: identical inputs always produce identical orderings.
func Order(debts []domain.Debt, strategy domain.Strategy) ([]string, error) {
	return OrderWithWeights(debts, strategy, DefaultHybridWeights)
}

// OrderWithWeights is Order with caller-supplied hybrid weights.
//
// Avalanche sorts by APR descending, ties by balance ascending, then ID.
// Snowball sorts by balance ascending, ties by APR descending, then ID.
// Hybrid sorts by composite score descending, ties by ID.
func OrderWithWeights(debts []domain.Debt, strategy domain.Strategy, weights HybridWeights) ([]string, error) {
	if err := domain.ValidateDebts(debts); err != nil {
		return nil, err
	}

	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownStrategy, int(strategy))
	}

	if err := weights.validate(); err != nil {
		return nil, err
	}

	return orderDebtIDs(debts, strategy, weights), nil
}

// orderDebtIDs assumes validated input.
func orderDebtIDs(debts []domain.Debt, strategy domain.Strategy, weights HybridWeights) []string {
	sorted := domain.CloneDebts(debts)

	switch strategy {
	case domain.StrategySnowball:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].PrincipalBalance != sorted[j].PrincipalBalance {
				return sorted[i].PrincipalBalance < sorted[j].PrincipalBalance
			}
			if c := sorted[i].APR.Cmp(sorted[j].APR); c != 0 {
				return c > 0
			}
			return sorted[i].ID < sorted[j].ID
		})

	case domain.StrategyHybrid:
		scores := hybridScores(sorted, weights)
		sort.Slice(sorted, func(i, j int) bool {
			si, sj := scores[sorted[i].ID], scores[sorted[j].ID]
			if si != sj {
				return si > sj
			}
			return sorted[i].ID < sorted[j].ID
		})

	default: // avalanche
		sort.Slice(sorted, func(i, j int) bool {
			if c := sorted[i].APR.Cmp(sorted[j].APR); c != 0 {
				return c > 0
			}
			if sorted[i].PrincipalBalance != sorted[j].PrincipalBalance {
				return sorted[i].PrincipalBalance < sorted[j].PrincipalBalance
			}
			return sorted[i].ID < sorted[j].ID
		})
	}

	ids := make([]string, len(sorted))
	for i, d := range sorted {
		ids[i] = d.ID
	}

	return ids
}

// hybridScores computes weights.APR·normAPR + weights.Balance·(1−normBalance)
// per debt. Scores are ordering keys, not money, so float64 is fine here.
func hybridScores(debts []domain.Debt, weights HybridWeights) map[string]float64 {
	minAPR, maxAPR := debts[0].APR.InexactFloat64(), debts[0].APR.InexactFloat64()
	minBal, maxBal := float64(debts[0].PrincipalBalance), float64(debts[0].PrincipalBalance)

	for _, d := range debts[1:] {
		apr := d.APR.InexactFloat64()
		bal := float64(d.PrincipalBalance)

		minAPR = math.Min(minAPR, apr)
		maxAPR = math.Max(maxAPR, apr)
		minBal = math.Min(minBal, bal)
		maxBal = math.Max(maxBal, bal)
	}

	scores := make(map[string]float64, len(debts))
	for _, d := range debts {
		normAPR := normalize(d.APR.InexactFloat64(), minAPR, maxAPR)
		normBal := normalize(float64(d.PrincipalBalance), minBal, maxBal)
		scores[d.ID] = weights.APR*normAPR + weights.Balance*(1-normBal)
	}

	return scores
}

// normalize min-max scales x into [0,1]; a degenerate range maps to 0 so a
// uniform component drops out of the score instead of dividing by zero.
func normalize(x, min, max float64) float64 {
	if max == min {
		return 0
	}

	return (x - min) / (max - min)
}
