package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BusinessPartnerRepositoryFacade covers investors entitled to revenue shares.
type BusinessPartnerRepositoryFacade interface {
	SaveBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error
	UpdateBusinessPartner(ctx context.Context, bp domain.BusinessPartner) error
	FindBusinessPartnerByID(ctx context.Context, id string) (*domain.BusinessPartner, error)
	ListBusinessPartners(ctx context.Context, activeOnly bool) ([]domain.BusinessPartner, error)
	DeactivateBusinessPartner(ctx context.Context, id string, userID string, now time.Time) error
}

// RevenueRepositoryFacade covers revenue transactions.
type RevenueRepositoryFacade interface {
	SaveRevenue(ctx context.Context, rev domain.RevenueTransaction) error
	ListRevenue(ctx context.Context, filter domain.RevenueFilter) ([]domain.RevenueTransaction, error)

	// SumRevenue totals revenue dated within [from, to]. An empty companyIDs list means all revenue.
	SumRevenue(ctx context.Context, from, to time.Time, companyIDs []string) (decimal.Decimal, error)
}

// DistributionReader defines read operations for distributions.
type DistributionReader interface {
	FindDistributionByID(ctx context.Context, id string) (*domain.Distribution, error)
	ListDistributions(ctx context.Context, filter domain.DistributionFilter) ([]domain.Distribution, error)
}

// DistributionWriter defines write operations for distributions.
type DistributionWriter interface {
	// SaveDistributions inserts all rows in one transaction. A non-cancelled distribution
	// for the same business partner and period yields apperrors.ErrDuplicate and nothing is written.
	SaveDistributions(ctx context.Context, distributions []domain.Distribution) error

	// UpdateDistributionStatus moves a PENDING distribution to next. When expense is not nil
	// it is inserted in the same transaction.
	UpdateDistributionStatus(ctx context.Context, id string, next domain.DistributionStatus, notes string, expense *domain.Expense, userID string, now time.Time) (*domain.Distribution, error)
}

// DistributionRepositoryFacade combines all distribution-related repository interfaces
type DistributionRepositoryFacade interface {
	DistributionReader
	DistributionWriter
}
