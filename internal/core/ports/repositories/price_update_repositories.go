package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// PriceUpdateReader resolves scopes and reads the audit log.
type PriceUpdateReader interface {
	// ResolveScope returns the variants matched by scope and their product names, ordered by variant id.
	ResolveScope(ctx context.Context, scope domain.PriceScope) ([]domain.ProductVariant, map[string]string, error)

	FindBatchByID(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error)
	ListBatches(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error)
}

// PriceUpdateWriter applies and reverts bulk updates.
type PriceUpdateWriter interface {
	// ApplyPriceUpdate locks the variants in batch.Scope, writes the new prices as one
	// statement keyed on the resolved id list and stores the audit batch, all in one transaction.
	// The returned batch carries the applied items.
	ApplyPriceUpdate(ctx context.Context, batch domain.PriceUpdateBatch) (*domain.PriceUpdateBatch, error)

	// RevertBatch restores every item's old price. A batch can be reverted once.
	RevertBatch(ctx context.Context, batchID string, userID string, now time.Time) (*domain.PriceUpdateBatch, error)
}

// PriceUpdateRepositoryFacade combines all price-update repository interfaces
type PriceUpdateRepositoryFacade interface {
	PriceUpdateReader
	PriceUpdateWriter
}
