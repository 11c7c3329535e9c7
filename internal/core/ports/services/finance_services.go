package services

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/dto"
)

// BusinessPartnerSvcFacade defines investor operations.
type BusinessPartnerSvcFacade interface {
	CreateBusinessPartner(ctx context.Context, req dto.CreateBusinessPartnerRequest, userID string) (*domain.BusinessPartner, error)
	GetBusinessPartnerByID(ctx context.Context, id string) (*domain.BusinessPartner, error)
	ListBusinessPartners(ctx context.Context, activeOnly bool) ([]domain.BusinessPartner, error)
	UpdateBusinessPartner(ctx context.Context, id string, req dto.UpdateBusinessPartnerRequest, userID string) (*domain.BusinessPartner, error)
	DeactivateBusinessPartner(ctx context.Context, id string, userID string) error
}

// RevenueSvcFacade defines revenue ledger operations.
type RevenueSvcFacade interface {
	RecordRevenue(ctx context.Context, req dto.CreateRevenueRequest, userID string) (*domain.RevenueTransaction, error)
	ListRevenue(ctx context.Context, params dto.ListRevenueParams) ([]domain.RevenueTransaction, error)
}

// DistributionSvcFacade defines the revenue share calculator.
type DistributionSvcFacade interface {
	// CalculateDistributions previews shares without writing anything.
	CalculateDistributions(ctx context.Context, req dto.DistributionPeriodRequest) ([]domain.DistributionCalculation, error)

	// CreateDistributions recalculates and persists all shares atomically.
	CreateDistributions(ctx context.Context, req dto.DistributionPeriodRequest, userID string) ([]domain.Distribution, error)

	UpdateDistributionStatus(ctx context.Context, id string, req dto.UpdateDistributionStatusRequest, userID string) (*domain.Distribution, error)
	GetDistributionByID(ctx context.Context, id string) (*domain.Distribution, error)
	ListDistributions(ctx context.Context, params dto.ListDistributionsParams) ([]domain.Distribution, error)
}

// WithdrawalSvcFacade defines the wallet withdrawal workflow.
type WithdrawalSvcFacade interface {
	CreateWithdrawal(ctx context.Context, partnerID string, req dto.CreateWithdrawalRequest, userID string) (*domain.WithdrawalRequest, error)
	GetWithdrawalByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, params dto.ListWithdrawalsParams) ([]domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id string, req dto.ApproveWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id string, req dto.RejectWithdrawalRequest, adminUserID string) (*domain.WithdrawalRequest, error)
}

// ExpenseSvcFacade defines expense ledger operations.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	SummarizeExpenses(ctx context.Context, year int, month int) ([]domain.ExpenseCategoryTotal, error)
}
