package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxDistributionRepository struct {
	BaseRepository
}

func newPgxDistributionRepository(pool DBPool) portsrepo.DistributionRepositoryFacade {
	return &PgxDistributionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DistributionRepositoryFacade = (*PgxDistributionRepository)(nil)

const distributionSelect = `
	SELECT d.distribution_id, d.business_partner_id, bp.name, d.period_start, d.period_end, d.total_revenue,
		d.share_percentage, d.share_amount, d.status, d.paid_at, d.notes,
		d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
	FROM distributions d
	JOIN business_partners bp ON bp.business_partner_id = d.business_partner_id
`

func scanDistribution(row pgx.Row) (*domain.Distribution, error) {
	var d domain.Distribution
	err := row.Scan(
		&d.DistributionID,
		&d.BusinessPartnerID,
		&d.PartnerName,
		&d.PeriodStart,
		&d.PeriodEnd,
		&d.TotalRevenue,
		&d.SharePercentage,
		&d.ShareAmount,
		&d.Status,
		&d.PaidAt,
		&d.Notes,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDistributionRepository) SaveDistributions(ctx context.Context, distributions []domain.Distribution) error {
	if len(distributions) == 0 {
		return nil
	}
	return r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		// All rows of one request share a period; check it up front for a readable error,
		// the partial unique index still guards concurrent requests.
		partnerIDs := make([]string, len(distributions))
		for i, d := range distributions {
			partnerIDs[i] = d.BusinessPartnerID
		}
		first := distributions[0]
		existsQuery := `
			SELECT business_partner_id FROM distributions
			WHERE business_partner_id = ANY($1) AND period_start = $2 AND period_end = $3 AND status <> 'CANCELLED';
		`
		rows, err := tx.Query(ctx, existsQuery, partnerIDs, first.PeriodStart, first.PeriodEnd)
		if err != nil {
			return fmt.Errorf("failed to check existing distributions: %w", err)
		}
		existing, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("failed to read existing distributions: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: distribution already exists for business partners %v in period %s..%s",
				apperrors.ErrDuplicate, existing, first.PeriodStart.Format("2006-01-02"), first.PeriodEnd.Format("2006-01-02"))
		}

		insert := `
			INSERT INTO distributions (distribution_id, business_partner_id, period_start, period_end, total_revenue, share_percentage,
				share_amount, status, notes, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		batch := &pgx.Batch{}
		for _, d := range distributions {
			batch.Queue(insert,
				d.DistributionID, d.BusinessPartnerID, d.PeriodStart, d.PeriodEnd, d.TotalRevenue, d.SharePercentage,
				d.ShareAmount, d.Status, d.Notes, d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapPgError(err, "failed to save distributions")
		}
		return nil
	})
}

func (r *PgxDistributionRepository) UpdateDistributionStatus(ctx context.Context, id string, next domain.DistributionStatus, notes string, expense *domain.Expense, userID string, now time.Time) (*domain.Distribution, error) {
	err := r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		var current domain.DistributionStatus
		err := tx.QueryRow(ctx, `SELECT status FROM distributions WHERE distribution_id = $1 FOR UPDATE;`, id).Scan(&current)
		if err != nil {
			return mapPgError(err, "distribution %s", id)
		}
		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: distribution %s is %s and cannot become %s", apperrors.ErrConflict, id, current, next)
		}

		var paidAt *time.Time
		if next == domain.DistributionCompleted {
			paidAt = &now
		}
		update := `
			UPDATE distributions
			SET status = $2, paid_at = $3, notes = CASE WHEN $4 = '' THEN notes ELSE $4 END,
				last_updated_at = $5, last_updated_by = $6
			WHERE distribution_id = $1;
		`
		if _, err := tx.Exec(ctx, update, id, next, paidAt, notes, now, userID); err != nil {
			return fmt.Errorf("failed to update distribution %s: %w", id, err)
		}

		if expense != nil {
			return insertExpense(ctx, tx, *expense)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindDistributionByID(ctx, id)
}

func (r *PgxDistributionRepository) FindDistributionByID(ctx context.Context, id string) (*domain.Distribution, error) {
	d, err := scanDistribution(r.Pool.QueryRow(ctx, distributionSelect+` WHERE d.distribution_id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "distribution %s", id)
	}
	return d, nil
}

func (r *PgxDistributionRepository) ListDistributions(ctx context.Context, f domain.DistributionFilter) ([]domain.Distribution, error) {
	query := distributionSelect + `
		WHERE ($1 = '' OR d.business_partner_id = $1)
			AND ($2 = '' OR d.status = $2)
		ORDER BY d.period_start DESC, bp.name
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, f.BusinessPartnerID, string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}
	defer rows.Close()

	out := []domain.Distribution{}
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution row: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
