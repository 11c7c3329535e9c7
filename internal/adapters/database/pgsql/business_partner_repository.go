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

type PgxBusinessPartnerRepository struct {
	BaseRepository
}

func newPgxBusinessPartnerRepository(pool DBPool) portsrepo.BusinessPartnerRepositoryFacade {
	return &PgxBusinessPartnerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessPartnerRepositoryFacade = (*PgxBusinessPartnerRepository)(nil)

const businessPartnerColumns = `business_partner_id, name, email, share_percentage, company_ids, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBusinessPartner(row pgx.Row) (*domain.BusinessPartner, error) {
	var bp domain.BusinessPartner
	err := row.Scan(
		&bp.BusinessPartnerID,
		&bp.Name,
		&bp.Email,
		&bp.SharePercentage,
		&bp.CompanyIDs,
		&bp.IsActive,
		&bp.CreatedAt,
		&bp.CreatedBy,
		&bp.LastUpdatedAt,
		&bp.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if bp.CompanyIDs == nil {
		bp.CompanyIDs = []string{}
	}
	return &bp, nil
}

func (r *PgxBusinessPartnerRepository) SaveBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error {
	query := `
		INSERT INTO business_partners (` + businessPartnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		bp.BusinessPartnerID, bp.Name, bp.Email, bp.SharePercentage, nonNil(bp.CompanyIDs), bp.IsActive,
		bp.CreatedAt, bp.CreatedBy, bp.LastUpdatedAt, bp.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save business partner %q", bp.Name)
}

func (r *PgxBusinessPartnerRepository) UpdateBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error {
	query := `
		UPDATE business_partners
		SET name = $2, email = $3, share_percentage = $4, company_ids = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE business_partner_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		bp.BusinessPartnerID, bp.Name, bp.Email, bp.SharePercentage, nonNil(bp.CompanyIDs), bp.IsActive, bp.LastUpdatedAt, bp.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update business partner %s", bp.BusinessPartnerID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: business partner %s", apperrors.ErrNotFound, bp.BusinessPartnerID)
	}
	return nil
}

func (r *PgxBusinessPartnerRepository) FindBusinessPartnerByID(ctx context.Context, id string) (*domain.BusinessPartner, error) {
	bp, err := scanBusinessPartner(r.Pool.QueryRow(ctx, `SELECT `+businessPartnerColumns+` FROM business_partners WHERE business_partner_id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "business partner %s", id)
	}
	return bp, nil
}

func (r *PgxBusinessPartnerRepository) ListBusinessPartners(ctx context.Context, activeOnly bool) ([]domain.BusinessPartner, error) {
	query := `SELECT ` + businessPartnerColumns + ` FROM business_partners WHERE ($1 = FALSE OR is_active) ORDER BY name, business_partner_id;`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query business partners: %w", err)
	}
	defer rows.Close()

	out := []domain.BusinessPartner{}
	for rows.Next() {
		bp, err := scanBusinessPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business partner row: %w", err)
		}
		out = append(out, *bp)
	}
	return out, rows.Err()
}

func (r *PgxBusinessPartnerRepository) DeactivateBusinessPartner(ctx context.Context, id string, userID string, now time.Time) error {
	query := `UPDATE business_partners SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE business_partner_id = $1 AND is_active;`
	cmdTag, err := r.Pool.Exec(ctx, query, id, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate business partner %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active business partner %s", apperrors.ErrNotFound, id)
	}
	return nil
}
