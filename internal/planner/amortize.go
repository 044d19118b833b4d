package planner

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyInterest returns one month of simple interest on balance at the given
// annual rate, in cents. Rounding to cents happens exactly once, half away from
// zero; nothing upstream or downstream accumulates fractional cents.
func MonthlyInterest(balance domain.Money, apr decimal.Decimal) domain.Money {
	if balance <= 0 || apr.IsZero() {
		return 0
	}

	interest := decimal.NewFromInt(int64(balance)).Mul(apr).DivRound(monthsPerYear, 0)

	return domain.Money(interest.IntPart())
}

// PeriodOutcome is the cent-exact result of applying one payment to one
// balance for one period. Interest + Principal always equals the portion of
// the payment that was actually applied.
type PeriodOutcome struct {
	Interest   domain.Money
	Principal  domain.Money
	NewBalance domain.Money
	Unused     domain.Money // payment beyond balance+interest; goes back to the surplus pool
}

// Applied returns the portion of the payment that was consumed this period.
func (o PeriodOutcome) Applied() domain.Money {
	return o.Interest + o.Principal
}

// ApplyPeriod splits one period's payment into interest and principal against
// balance. A payment below the period's interest signals ErrInsufficientPayment
// rather than growing the balance: this engine plans payoff, it does not model
// delinquency. Principal is capped at the open balance; the excess is returned
// in Unused for same-period reuse.
func ApplyPeriod(balance domain.Money, apr decimal.Decimal, payment domain.Money) (PeriodOutcome, error) {
	if balance.IsNegative() {
		return PeriodOutcome{}, fmt.Errorf("%w: balance must be non-negative", domain.ErrInvalidInput)
	}

	if payment.IsNegative() {
		return PeriodOutcome{}, fmt.Errorf("%w: payment must be non-negative", domain.ErrInvalidInput)
	}

	if balance.IsZero() {
		return PeriodOutcome{Unused: payment}, nil
	}

	interest := MonthlyInterest(balance, apr)
	if payment < interest {
		return PeriodOutcome{}, fmt.Errorf("%w: payment %s below monthly interest %s",
			domain.ErrInsufficientPayment, payment, interest)
	}

	principal := payment - interest

	var unused domain.Money
	if principal > balance {
		unused = principal - balance
		principal = balance
	}

	return PeriodOutcome{
		Interest:   interest,
		Principal:  principal,
		NewBalance: balance - principal,
		Unused:     unused,
	}, nil
}

// CheckAmortizing reports whether the debt's minimum payment covers its
// monthly interest. A failing debt gets a typed error naming it, so callers
// can surface the shortfall per debt before running a full simulation.
func CheckAmortizing(d domain.Debt) error {
	if !d.Outstanding() {
		return nil
	}

	interest := MonthlyInterest(d.PrincipalBalance, d.APR)
	if interest > d.MinimumPayment {
		return &domain.InsufficientPaymentError{
			DebtID:          d.ID,
			MonthlyInterest: interest,
			MinimumPayment:  d.MinimumPayment,
		}
	}

	return nil
}

// AnnuityPayment computes the level monthly payment that fully amortizes the
// balance over the term at the given annual rate, rounded up to the next cent.
// The exact annuity value strictly exceeds one month's interest, so the
// rounded-up payment never leaves a debt non-amortizing.
func AnnuityPayment(balance domain.Money, apr decimal.Decimal, termMonths int) domain.Money {
	if balance <= 0 || termMonths <= 0 {
		return 0
	}

	if apr.IsZero() {
		return domain.Money(math.Ceil(float64(balance) / float64(termMonths)))
	}

	rate := apr.InexactFloat64() / 12
	growth := math.Pow(1+rate, float64(termMonths))
	payment := float64(balance) * rate * growth / (growth - 1)

	return domain.Money(math.Ceil(payment))
}
