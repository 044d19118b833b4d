package planner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
)

// RefinanceOffer is the alternative contract evaluated against a debt's
// current one.
type RefinanceOffer struct {
	APR decimal.Decimal
	// TermMonths is the offer's repayment term. When positive, the target
	// debt's minimum payment is recomputed as the level annuity payment over
	// that term; when zero, the current minimum payment is kept.
	TermMonths int
}

func (o RefinanceOffer) validate() error {
	if o.APR.IsNegative() {
		return fmt.Errorf("%w: offer APR must be non-negative", domain.ErrInvalidInput)
	}

	if o.APR.GreaterThan(domain.MaxAPR) {
		return fmt.Errorf("%w: offer APR exceeds maximum %s", domain.ErrInvalidInput, domain.MaxAPR)
	}

	if o.TermMonths < 0 || o.TermMonths > domain.MaxTermMonths {
		return fmt.Errorf("%w: offer term must be between 0 and %d months", domain.ErrInvalidInput, domain.MaxTermMonths)
	}

	return nil
}

// CompareRefinancing simulates the debt set twice, once as-is and once with
// the offer substituted on the target debt, holding every other debt and the
// discretionary budget constant. Savings are baseline minus alternative and
// may be negative; a worse offer is a meaningful answer, not an error.
func CompareRefinancing(debts []domain.Debt, targetID string, offer RefinanceOffer, strategy domain.Strategy, budget domain.Money, opts SimulationOptions) (*domain.RefinanceComparison, error) {
	if err := domain.ValidateDebts(debts); err != nil {
		return nil, err
	}

	if err := offer.validate(); err != nil {
		return nil, err
	}

	target := -1
	for i, d := range debts {
		if d.ID == targetID {
			target = i
			break
		}
	}

	if target < 0 {
		return nil, fmt.Errorf("%w: refinance target %q", domain.ErrDebtNotFound, targetID)
	}

	baseline, err := Simulate(debts, strategy, budget, opts)
	if err != nil {
		return nil, err
	}

	refinanced := domain.CloneDebts(debts)
	refinanced[target].APR = offer.APR
	if offer.TermMonths > 0 {
		refinanced[target].TermMonths = offer.TermMonths
		refinanced[target].MinimumPayment = AnnuityPayment(refinanced[target].PrincipalBalance, offer.APR, offer.TermMonths)
	}

	alternative, err := Simulate(refinanced, strategy, budget, opts)
	if err != nil {
		return nil, err
	}

	return &domain.RefinanceComparison{
		TargetDebtID:             targetID,
		BaselineTotalInterest:    baseline.TotalInterestPaid,
		AlternativeTotalInterest: alternative.TotalInterestPaid,
		InterestSavings:          baseline.TotalInterestPaid - alternative.TotalInterestPaid,
		BaselineMonths:           baseline.MonthsToPayoff,
		AlternativeMonths:        alternative.MonthsToPayoff,
		MonthsSaved:              baseline.MonthsToPayoff - alternative.MonthsToPayoff,
		BaselineStatus:           baseline.Status,
		AlternativeStatus:        alternative.Status,
	}, nil
}
