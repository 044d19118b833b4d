package domain

import (
	"github.com/shopspring/decimal"
)

// Debt represents one liability being planned against. The planner treats a
// debt as immutable input; working balances live inside the simulation run.
type Debt struct {
	ID               string
	Name             string
	PrincipalBalance Money
	APR              decimal.Decimal // annual rate as a fraction, e.g. 0.1899 for 18.99%
	MinimumPayment   Money
	TermMonths       int // remaining term in months; zero means open-ended
}

// Outstanding reports whether the debt still carries a balance.
func (d *Debt) Outstanding() bool {
	return d.PrincipalBalance > 0
}

// CloneDebts returns a caller-owned copy of the debt slice. Simulation runs
// copy their inputs so concurrent runs over the same slice never interfere.
func CloneDebts(debts []Debt) []Debt {
	cp := make([]Debt, len(debts))
	copy(cp, debts)

	return cp
}
