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

type PgxPartnerRepository struct {
	BaseRepository
	txTimeout time.Duration
}

func newPgxPartnerRepository(pool DBPool, txTimeout time.Duration) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{BaseRepository: BaseRepository{Pool: pool}, txTimeout: txTimeout}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

const partnerSelect = `
	SELECT p.partner_id, p.name, p.email, p.phone, p.gender, p.blood_group, p.specialization, p.address,
		p.wallet_balance, p.is_active, p.created_at, p.created_by, p.last_updated_at, p.last_updated_by,
		COALESCE((SELECT array_agg(d.day_of_week ORDER BY d.day_of_week) FROM partner_available_days d WHERE d.partner_id = p.partner_id), '{}')
	FROM partners p
`

func scanPartner(row pgx.Row) (*domain.Partner, error) {
	var (
		p          domain.Partner
		bloodGroup *string
		days       []string
	)
	err := row.Scan(
		&p.PartnerID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Gender,
		&bloodGroup,
		&p.Specialization,
		&p.Address,
		&p.WalletBalance,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
		&days,
	)
	if err != nil {
		return nil, err
	}
	if bloodGroup != nil {
		bg := domain.BloodGroup(*bloodGroup)
		p.BloodGroup = &bg
	}
	p.AvailableDays = make([]domain.DayOfWeek, len(days))
	for i, d := range days {
		p.AvailableDays[i] = domain.DayOfWeek(d)
	}
	return &p, nil
}

func bloodGroupArg(bg *domain.BloodGroup) *string {
	if bg == nil {
		return nil
	}
	s := string(*bg)
	return &s
}

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, p domain.Partner) error {
	return r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO partners (partner_id, name, email, phone, gender, blood_group, specialization, address,
				wallet_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`
		_, err := tx.Exec(ctx, query,
			p.PartnerID, p.Name, p.Email, p.Phone, p.Gender, bloodGroupArg(p.BloodGroup), p.Specialization, p.Address,
			p.WalletBalance, p.IsActive, p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		if err != nil {
			return mapPgError(err, "failed to save partner %s", p.Email)
		}
		return replaceAvailableDays(ctx, tx, p.PartnerID, p.AvailableDays)
	})
}

func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, p domain.Partner) error {
	return r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE partners
			SET name = $2, email = $3, phone = $4, gender = $5, blood_group = $6, specialization = $7,
				address = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
			WHERE partner_id = $1;
		`
		cmdTag, err := tx.Exec(ctx, query,
			p.PartnerID, p.Name, p.Email, p.Phone, p.Gender, bloodGroupArg(p.BloodGroup), p.Specialization,
			p.Address, p.IsActive, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		if err != nil {
			return mapPgError(err, "failed to update partner %s", p.PartnerID)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, p.PartnerID)
		}
		return replaceAvailableDays(ctx, tx, p.PartnerID, p.AvailableDays)
	})
}

func replaceAvailableDays(ctx context.Context, tx pgx.Tx, partnerID string, days []domain.DayOfWeek) error {
	if _, err := tx.Exec(ctx, `DELETE FROM partner_available_days WHERE partner_id = $1;`, partnerID); err != nil {
		return fmt.Errorf("failed to clear available days for partner %s: %w", partnerID, err)
	}
	if len(days) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range days {
		batch.Queue(`INSERT INTO partner_available_days (partner_id, day_of_week) VALUES ($1, $2);`, partnerID, string(d))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapPgError(err, "failed to store available days for partner %s", partnerID)
	}
	return nil
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	p, err := scanPartner(r.Pool.QueryRow(ctx, partnerSelect+` WHERE p.partner_id = $1;`, partnerID))
	if err != nil {
		return nil, mapPgError(err, "partner %s", partnerID)
	}
	return p, nil
}

func (r *PgxPartnerRepository) ListPartners(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Partner, error) {
	query := partnerSelect + `
		WHERE ($1 = FALSE OR p.is_active)
		ORDER BY p.name, p.partner_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", err)
	}
	return partners, nil
}

func (r *PgxPartnerRepository) DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error {
	query := `
		UPDATE partners SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE partner_id = $1 AND is_active;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, partnerID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate partner %s: %w", partnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active partner %s", apperrors.ErrNotFound, partnerID)
	}
	return nil
}

func (r *PgxPartnerRepository) CreditWallet(ctx context.Context, credit domain.WalletCredit) (*domain.Partner, error) {
	err := r.WithTx(ctx, r.txTimeout, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE partners SET wallet_balance = wallet_balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE partner_id = $1 AND is_active;
		`, credit.PartnerID, credit.Amount, credit.CreatedAt, credit.CreatedBy)
		if err != nil {
			return mapPgError(err, "failed to credit wallet of partner %s", credit.PartnerID)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: active partner %s", apperrors.ErrNotFound, credit.PartnerID)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO wallet_credits (credit_id, partner_id, amount, note, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, credit.CreditID, credit.PartnerID, credit.Amount, credit.Note, credit.CreatedAt, credit.CreatedBy, credit.LastUpdatedAt, credit.LastUpdatedBy)
		return mapPgError(err, "failed to record wallet credit %s", credit.CreditID)
	})
	if err != nil {
		return nil, err
	}
	return r.FindPartnerByID(ctx, credit.PartnerID)
}
