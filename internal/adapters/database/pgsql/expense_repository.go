package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool DBPool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// insertExpense is shared by the withdrawal and distribution workflows, which record
// an expense inside their own transaction.
func insertExpense(ctx context.Context, db execer, e domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, category, amount, description, expense_date, status, reference_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := db.Exec(ctx, query,
		e.ExpenseID,
		e.Category,
		e.Amount,
		e.Description,
		e.ExpenseDate,
		e.Status,
		e.ReferenceID,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
	return mapPgError(err, "failed to save expense %s", e.ExpenseID)
}

const expenseColumns = `expense_id, category, amount, description, expense_date, status, reference_id, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.ExpenseDate,
		&e.Status,
		&e.ReferenceID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, e domain.Expense) error {
	return insertExpense(ctx, r.Pool, e)
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, e domain.Expense) error {
	query := `
		UPDATE expenses
		SET category = $2, amount = $3, description = $4, expense_date = $5, status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE expense_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, e.ExpenseID, e.Category, e.Amount, e.Description, e.ExpenseDate, e.Status, e.LastUpdatedAt, e.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update expense %s", e.ExpenseID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, e.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, id string) (*domain.Expense, error) {
	e, err := scanExpense(r.Pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1;`, id))
	if err != nil {
		return nil, mapPgError(err, "expense %s", id)
	}
	return e, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ($1 = '' OR category = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::date IS NULL OR expense_date >= $3)
			AND ($4::date IS NULL OR expense_date <= $4)
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $5 OFFSET $6;
	`
	rows, err := r.Pool.Query(ctx, query, string(f.Category), string(f.Status), f.From, f.To, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes a manual expense. Expenses produced by a withdrawal or
// distribution are part of that record's history and cannot be deleted.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, id string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1 AND reference_id IS NULL;`, id)
	if err != nil {
		return mapPgError(err, "failed to delete expense %s", id)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindExpenseByID(ctx, id); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: expense %s is linked to another record", apperrors.ErrConflict, id)
	}
	return nil
}

func (r *PgxExpenseRepository) SummarizeExpenses(ctx context.Context, from, to time.Time) ([]domain.ExpenseCategoryTotal, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE status <> 'CANCELLED' AND expense_date >= $1 AND expense_date < $2
		GROUP BY category
		ORDER BY category;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	defer rows.Close()

	totals := []domain.ExpenseCategoryTotal{}
	for rows.Next() {
		var t domain.ExpenseCategoryTotal
		if err := rows.Scan(&t.Category, &t.Count, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan expense summary row: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
