package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finvue/debtplan/internal/domain"
)

type dbConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DebtRepository implements usecase.DebtRepository. Debt rows are owned by the
// surrounding dashboard; this service only ever reads them.
type DebtRepository struct {
	db dbConn
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return newDebtRepositoryWithDB(pool)
}

func newDebtRepositoryWithDB(db dbConn) *DebtRepository {
	return &DebtRepository{db: db}
}

// ListByUser returns the user's active debts ordered by ID.
func (r *DebtRepository) ListByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	query := `
		SELECT id, name, principal_balance, apr, minimum_payment, term_months
		FROM debts
		WHERE user_id = $1 AND active
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []domain.Debt

	for rows.Next() {
		var (
			d       domain.Debt
			balance int64
			apr     pgtype.Numeric
			minimum int64
		)

		if err := rows.Scan(&d.ID, &d.Name, &balance, &apr, &minimum, &d.TermMonths); err != nil {
			return nil, err
		}

		d.PrincipalBalance = domain.Money(balance)
		d.APR = numericToDecimal(apr)
		d.MinimumPayment = domain.Money(minimum)
		debts = append(debts, d)
	}

	return debts, rows.Err()
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
