package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxRevenueRepository struct {
	BaseRepository
}

func newPgxRevenueRepository(pool DBPool) portsrepo.RevenueRepositoryFacade {
	return &PgxRevenueRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RevenueRepositoryFacade = (*PgxRevenueRepository)(nil)

const insertRevenueQuery = `
	INSERT INTO revenue_transactions (revenue_id, amount, transaction_date, company_id, order_id, description, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func insertRevenue(ctx context.Context, db execer, rev domain.RevenueTransaction) error {
	_, err := db.Exec(ctx, insertRevenueQuery,
		rev.RevenueID,
		rev.Amount,
		rev.TransactionDate,
		rev.CompanyID,
		rev.OrderID,
		rev.Description,
		rev.CreatedAt,
		rev.CreatedBy,
		rev.LastUpdatedAt,
		rev.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save revenue transaction %s", rev.RevenueID)
}

func (r *PgxRevenueRepository) SaveRevenue(ctx context.Context, rev domain.RevenueTransaction) error {
	return insertRevenue(ctx, r.Pool, rev)
}

func (r *PgxRevenueRepository) ListRevenue(ctx context.Context, f domain.RevenueFilter) ([]domain.RevenueTransaction, error) {
	var from, to *time.Time
	if !f.From.IsZero() {
		from = &f.From
	}
	if !f.To.IsZero() {
		to = &f.To
	}
	query := `
		SELECT revenue_id, amount, transaction_date, company_id, order_id, description, created_at, created_by, last_updated_at, last_updated_by
		FROM revenue_transactions
		WHERE ($1::date IS NULL OR transaction_date >= $1)
			AND ($2::date IS NULL OR transaction_date <= $2)
			AND (cardinality($3::text[]) = 0 OR company_id = ANY($3))
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, nonNil(f.CompanyIDs), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer rows.Close()

	out := []domain.RevenueTransaction{}
	for rows.Next() {
		var rev domain.RevenueTransaction
		if err := rows.Scan(
			&rev.RevenueID, &rev.Amount, &rev.TransactionDate, &rev.CompanyID, &rev.OrderID, &rev.Description,
			&rev.CreatedAt, &rev.CreatedBy, &rev.LastUpdatedAt, &rev.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PgxRevenueRepository) SumRevenue(ctx context.Context, from, to time.Time, companyIDs []string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM revenue_transactions
		WHERE transaction_date BETWEEN $1 AND $2
			AND (cardinality($3::text[]) = 0 OR company_id = ANY($3));
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from, to, nonNil(companyIDs)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue between %s and %s: %w", from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}
	return total, nil
}
