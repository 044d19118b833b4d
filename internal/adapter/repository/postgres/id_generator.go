package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator implements usecase.IDGenerator. ULIDs sort by creation time,
// which keeps snapshot history ordering cheap.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
