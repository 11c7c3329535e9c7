package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/metrics"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/animal-wellness/aw_backend/internal/utils/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// priceUpdateService is the bulk price engine. Rules are checked before any query runs;
// the repository applies a rule to the resolved variant list inside one transaction.
type priceUpdateService struct {
	BaseService
	priceRepo portsrepo.PriceUpdateRepositoryFacade
}

func NewPriceUpdateService(priceRepo portsrepo.PriceUpdateRepositoryFacade, tracker utils.EventTracker) portssvc.PriceUpdateSvcFacade {
	return &priceUpdateService{BaseService: BaseService{Tracker: tracker}, priceRepo: priceRepo}
}

var _ portssvc.PriceUpdateSvcFacade = (*priceUpdateService)(nil)

// validateRule checks everything about a request that needs no database access.
func validateRule(scope domain.PriceScope, priceType, updateType string, value decimal.Decimal) (domain.PriceType, domain.PriceUpdateType, error) {
	pt := domain.PriceType(priceType)
	if !pt.IsValid() {
		return "", "", fmt.Errorf("%w: unknown price type %q", apperrors.ErrValidation, priceType)
	}
	ut := domain.PriceUpdateType(updateType)
	if err := pricing.ValidateValue(ut, value); err != nil {
		return "", "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if scope.IsEmpty() {
		return "", "", fmt.Errorf("%w: select companies, partners or products, or set updateAllProducts", apperrors.ErrValidation)
	}
	return pt, ut, nil
}

func (s *priceUpdateService) PreviewPriceUpdate(ctx context.Context, params dto.PriceUpdatePreviewParams) (*dto.PriceUpdatePreviewResponse, error) {
	if params.UpdateAllProducts {
		return nil, fmt.Errorf("%w: preview is not available for updateAllProducts", apperrors.ErrValidation)
	}
	value, err := decimal.NewFromString(params.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: value %q is not a number", apperrors.ErrValidation, params.Value)
	}
	scope := params.Scope()
	pt, ut, err := validateRule(scope, params.PriceType, params.UpdateType, value)
	if err != nil {
		return nil, err
	}

	variants, names, err := s.priceRepo.ResolveScope(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve price update scope")
		return nil, err
	}
	changes, err := pricing.Plan(variants, names, pt, ut, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	s.LogDebug(ctx, "Price update previewed", slog.Int("variants", len(changes)))
	return &dto.PriceUpdatePreviewResponse{
		PriceType:    pt,
		UpdateType:   ut,
		Value:        value,
		VariantCount: len(changes),
		Changes:      changes,
	}, nil
}

func (s *priceUpdateService) ApplyPriceUpdate(ctx context.Context, req dto.PriceUpdateRequest, userID string) (*domain.PriceUpdateBatch, error) {
	if req.Value == nil {
		return nil, fmt.Errorf("%w: value is required", apperrors.ErrValidation)
	}
	scope := req.Scope()
	pt, ut, err := validateRule(scope, req.PriceType, req.UpdateType, *req.Value)
	if err != nil {
		return nil, err
	}

	batch := domain.PriceUpdateBatch{
		BatchID:    uuid.NewString(),
		Scope:      scope,
		PriceType:  pt,
		UpdateType: ut,
		Value:      *req.Value,
		CreatedBy:  userID,
		CreatedAt:  s.now(),
	}
	applied, err := s.priceRepo.ApplyPriceUpdate(ctx, batch)
	if err != nil {
		metrics.PriceUpdatesTotal.WithLabelValues("failed").Inc()
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to apply price update", slog.String("batch_id", batch.BatchID))
		}
		return nil, err
	}

	metrics.PriceUpdatesTotal.WithLabelValues("applied").Inc()
	metrics.PriceUpdateVariants.Observe(float64(applied.VariantCount))
	s.track(userID, utils.EventPriceUpdateApplied, map[string]any{
		"batch_id":      applied.BatchID,
		"price_type":    string(pt),
		"update_type":   string(ut),
		"variant_count": applied.VariantCount,
	})
	s.LogInfo(ctx, "Price update applied",
		slog.String("batch_id", applied.BatchID),
		slog.String("price_type", string(pt)),
		slog.String("update_type", string(ut)),
		slog.Int("variants", applied.VariantCount))
	return applied, nil
}

func (s *priceUpdateService) GetPriceUpdate(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error) {
	batch, err := s.priceRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get price update", slog.String("batch_id", batchID))
		}
		return nil, err
	}
	return batch, nil
}

func (s *priceUpdateService) ListPriceUpdates(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error) {
	batches, err := s.priceRepo.ListBatches(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list price updates")
		return nil, err
	}
	if batches == nil {
		return []domain.PriceUpdateBatch{}, nil
	}
	return batches, nil
}

func (s *priceUpdateService) RevertPriceUpdate(ctx context.Context, batchID string, userID string) (*domain.PriceUpdateBatch, error) {
	batch, err := s.priceRepo.RevertBatch(ctx, batchID, userID, s.now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to revert price update", slog.String("batch_id", batchID))
		}
		return nil, err
	}

	metrics.PriceUpdatesTotal.WithLabelValues("reverted").Inc()
	s.track(userID, utils.EventPriceUpdateReverted, map[string]any{"batch_id": batchID})
	s.LogInfo(ctx, "Price update reverted", slog.String("batch_id", batchID), slog.Int("variants", batch.VariantCount))
	return batch, nil
}
