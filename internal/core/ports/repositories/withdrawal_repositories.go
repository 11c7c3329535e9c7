package repositories

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// WithdrawalReader defines read operations for withdrawal requests.
type WithdrawalReader interface {
	FindWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalRequest, error)
}

// WithdrawalWriter defines the state transitions of a withdrawal request.
type WithdrawalWriter interface {
	SaveWithdrawal(ctx context.Context, w domain.WithdrawalRequest) error

	// ApproveWithdrawal marks a pending request approved, debits the partner wallet and records
	// expense, all in one transaction. It returns apperrors.ErrAlreadyProcessed when the request
	// is no longer pending and apperrors.ErrInsufficientBalance when the wallet cannot cover it.
	ApproveWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision, expense domain.Expense) (*domain.WithdrawalRequest, error)

	// RejectWithdrawal marks a pending request rejected without touching the wallet.
	RejectWithdrawal(ctx context.Context, id string, decision domain.WithdrawalDecision) (*domain.WithdrawalRequest, error)
}

// WithdrawalRepositoryFacade combines all withdrawal-related repository interfaces
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
}
