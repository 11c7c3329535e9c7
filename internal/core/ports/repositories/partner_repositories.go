package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// PartnerReader defines read operations for resellers.
type PartnerReader interface {
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Partner, error)
}

// PartnerWriter defines write operations for resellers.
// Save and Update write the partner row and its available days atomically.
type PartnerWriter interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	UpdatePartner(ctx context.Context, partner domain.Partner) error
	DeactivatePartner(ctx context.Context, partnerID string, userID string, now time.Time) error
	// CreditWallet adds credit.Amount to an active partner's balance and records the credit in one transaction.
	CreditWallet(ctx context.Context, credit domain.WalletCredit) (*domain.Partner, error)
}

// PartnerRepositoryFacade combines all partner-related repository interfaces
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}
