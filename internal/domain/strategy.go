package domain

import "fmt"

// Strategy selects the order in which surplus payments are directed. It is a
// closed enumeration; tie-break and rollover behavior depend on the variant.
type Strategy int

const (
	// StrategyAvalanche targets the highest APR first, minimizing total interest.
	StrategyAvalanche Strategy = iota
	// StrategySnowball targets the smallest balance first for early payoffs.
	StrategySnowball
	// StrategyHybrid blends APR and balance into a composite score.
	StrategyHybrid
)

// ParseStrategy maps an upstream strategy selection onto the enum. Unrecognized
// values are rejected here so they never reach the planner.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "avalanche":
		return StrategyAvalanche, nil
	case "snowball":
		return StrategySnowball, nil
	case "hybrid":
		return StrategyHybrid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAvalanche:
		return "avalanche"
	case StrategySnowball:
		return "snowball"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined variants.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyAvalanche, StrategySnowball, StrategyHybrid:
		return true
	default:
		return false
	}
}
