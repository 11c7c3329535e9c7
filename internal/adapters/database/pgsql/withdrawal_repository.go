package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxWithdrawalRepository struct {
	BaseRepository
}

func newPgxWithdrawalRepository(pool DBPool) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WithdrawalRepositoryFacade = (*PgxWithdrawalRepository)(nil)

const withdrawalSelect = `
	SELECT w.withdrawal_id, w.partner_id, p.name, p.email, w.amount, w.status, w.partner_note, w.admin_note,
		w.rejection_reason, w.processed_by, w.processed_at, w.expense_id,
		w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
	FROM withdrawal_requests w
	JOIN partners p ON p.partner_id = w.partner_id
`

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := row.Scan(
		&w.WithdrawalID,
		&w.PartnerID,
		&w.PartnerName,
		&w.PartnerEmail,
		&w.Amount,
		&w.Status,
		&w.PartnerNote,
		&w.AdminNote,
		&w.RejectionReason,
		&w.ProcessedBy,
		&w.ProcessedAt,
		&w.ExpenseID,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PgxWithdrawalRepository) SaveWithdrawal(ctx context.Context, w domain.WithdrawalRequest) error {
	query := `
		INSERT INTO withdrawal_requests (withdrawal_id, partner_id, amount, status, partner_note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, w.WithdrawalID, w.PartnerID, w.Amount, w.Status, w.PartnerNote, w.CreatedAt, w.CreatedBy, w.LastUpdatedAt, w.LastUpdatedBy)
	return mapPgError(err, "failed to save withdrawal request %s", w.WithdrawalID)
}

func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	w, err := scanWithdrawal(r.Pool.QueryRow(ctx, withdrawalSelect+` WHERE w.withdrawal_id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "withdrawal request %s", id)
	}
	return w, nil
}

func (r *PgxWithdrawalRepository) ListWithdrawals(ctx context.Context, f domain.WithdrawalFilter) ([]domain.WithdrawalRequest, error) {
	query := withdrawalSelect + `
		WHERE ($1 = '' OR w.partner_id = $1)
			AND ($2 = '' OR w.status = $2)
		ORDER BY w.created_at DESC, w.withdrawal_id DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, f.PartnerID, string(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal requests: %w", err)
	}
	defer rows.Close()

	out := []domain.WithdrawalRequest{}
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// notPendingError explains why a conditional transition matched no row.
func notPendingError(ctx context.Context, tx pgx.Tx, id string) error {
	var status domain.WithdrawalStatus
	err := tx.QueryRow(ctx, `SELECT status FROM withdrawal_requests WHERE withdrawal_id = $1;`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: withdrawal request %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to read withdrawal request %s: %w", id, err)
	}
	return fmt.Errorf("%w: withdrawal request %s is %s", apperrors.ErrAlreadyProcessed, id, status)
}

func (r *PgxWithdrawalRepository) ApproveWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision, expense domain.Expense) (*domain.WithdrawalRequest, error) {
	err := r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		var (
			partnerID string
			amount    decimal.Decimal
		)
		transition := `
			UPDATE withdrawal_requests
			SET status = 'approved', admin_note = $2, processed_by = $3, processed_at = $4, last_updated_at = $4, last_updated_by = $3
			WHERE withdrawal_id = $1 AND status = 'pending'
			RETURNING partner_id, amount;
		`
		err := tx.QueryRow(ctx, transition, id, decision.AdminNote, decision.ProcessedBy, decision.ProcessedAt).Scan(&partnerID, &amount)
		if errors.Is(err, pgx.ErrNoRows) {
			return notPendingError(ctx, tx, id)
		}
		if err != nil {
			return fmt.Errorf("failed to approve withdrawal request %s: %w", id, err)
		}

		debit := `
			UPDATE partners
			SET wallet_balance = wallet_balance - $2, last_updated_at = $3, last_updated_by = $4
			WHERE partner_id = $1 AND wallet_balance >= $2;
		`
		cmdTag, err := tx.Exec(ctx, debit, partnerID, amount, decision.ProcessedAt, decision.ProcessedBy)
		if err != nil {
			return fmt.Errorf("failed to debit wallet of partner %s: %w", partnerID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: partner %s cannot cover %s", apperrors.ErrInsufficientBalance, partnerID, amount.StringFixed(2))
		}

		// The stored amount is authoritative; the caller's copy may be stale.
		expense.Amount = amount
		expense.ReferenceID = &id
		if err := insertExpense(ctx, tx, expense); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE withdrawal_requests SET expense_id = $2 WHERE withdrawal_id = $1;`, id, expense.ExpenseID); err != nil {
			return fmt.Errorf("failed to link expense to withdrawal request %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindWithdrawalByID(ctx, id)
}

func (r *PgxWithdrawalRepository) RejectWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision) (*domain.WithdrawalRequest, error) {
	err := r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		transition := `
			UPDATE withdrawal_requests
			SET status = 'rejected', rejection_reason = $2, admin_note = $3, processed_by = $4, processed_at = $5,
				last_updated_at = $5, last_updated_by = $4
			WHERE withdrawal_id = $1 AND status = 'pending';
		`
		cmdTag, err := tx.Exec(ctx, transition, id, decision.RejectionReason, decision.AdminNote, decision.ProcessedBy, decision.ProcessedAt)
		if err != nil {
			return fmt.Errorf("failed to reject withdrawal request %s: %w", id, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return notPendingError(ctx, tx, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindWithdrawalByID(ctx, id)
}
