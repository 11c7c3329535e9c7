package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// ExpenseRepositoryFacade covers the expense ledger.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// SummarizeExpenses groups non-cancelled expenses dated in [from, to) by category.
	SummarizeExpenses(ctx context.Context, from, to time.Time) ([]domain.ExpenseCategoryTotal, error)
}
