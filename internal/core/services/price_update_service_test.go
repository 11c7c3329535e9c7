package services_test

import (
	"context"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/core/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPreviewPriceUpdate_ComputesWithoutWriting(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceUpdateRepository)
	svc := services.NewPriceUpdateService(repo, nil)

	params := dto.PriceUpdatePreviewParams{
		CompanyIDs: []string{"c-1"},
		PriceType:  "customerPrice",
		UpdateType: "percentage",
		Value:      "10",
	}
	variants := []domain.ProductVariant{
		{VariantID: "v-1", ProductID: "p-1", PackingVolume: "1L", CustomerPrice: decimal.NewFromInt(1000)},
		{VariantID: "v-2", ProductID: "p-1", PackingVolume: "500ml", CustomerPrice: decimal.RequireFromString("19.99")},
	}
	repo.On("ResolveScope", ctx, params.Scope()).Return(variants, map[string]string{"p-1": "Joint Care"}, nil).Once()

	resp, err := svc.PreviewPriceUpdate(ctx, params)

	require.NoError(t, err)
	require.Len(t, resp.Changes, 2)
	assert.Equal(t, 2, resp.VariantCount)
	assert.Equal(t, "1100.00", resp.Changes[0].NewPrice.StringFixed(2))
	assert.Equal(t, "21.99", resp.Changes[1].NewPrice.StringFixed(2))
	assert.Equal(t, "Joint Care", resp.Changes[0].ProductName)
	repo.AssertNotCalled(t, "ApplyPriceUpdate", mock.Anything, mock.Anything)
}

func TestPreviewPriceUpdate_Rejections(t *testing.T) {
	repo := new(MockPriceUpdateRepository)
	svc := services.NewPriceUpdateService(repo, nil)

	tests := []struct {
		name   string
		params dto.PriceUpdatePreviewParams
	}{
		{"update all products", dto.PriceUpdatePreviewParams{UpdateAllProducts: true, PriceType: "customerPrice", UpdateType: "exact", Value: "5"}},
		{"empty scope", dto.PriceUpdatePreviewParams{PriceType: "customerPrice", UpdateType: "exact", Value: "5"}},
		{"not a number", dto.PriceUpdatePreviewParams{ProductIDs: []string{"p"}, PriceType: "customerPrice", UpdateType: "exact", Value: "abc"}},
		{"unknown price type", dto.PriceUpdatePreviewParams{ProductIDs: []string{"p"}, PriceType: "retail", UpdateType: "exact", Value: "5"}},
		{"unknown update type", dto.PriceUpdatePreviewParams{ProductIDs: []string{"p"}, PriceType: "dealerPrice", UpdateType: "multiply", Value: "5"}},
		{"negative addition", dto.PriceUpdatePreviewParams{ProductIDs: []string{"p"}, PriceType: "dealerPrice", UpdateType: "addition", Value: "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PreviewPriceUpdate(context.Background(), tt.params)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
	repo.AssertNotCalled(t, "ResolveScope", mock.Anything, mock.Anything)
}

func TestApplyPriceUpdate_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceUpdateRepository)
	tracker := new(MockTracker)
	svc := services.NewPriceUpdateService(repo, tracker)

	req := dto.PriceUpdateRequest{
		UpdateAllProducts: true,
		PriceType:         "dealerPrice",
		UpdateType:        "subtraction",
		Value:             dec("1500"),
	}
	applied := &domain.PriceUpdateBatch{BatchID: "b-1", PriceType: domain.DealerPrice, UpdateType: domain.UpdateSubtraction, VariantCount: 3}

	repo.On("ApplyPriceUpdate", ctx, mock.MatchedBy(func(b domain.PriceUpdateBatch) bool {
		return b.Scope.UpdateAllProducts && b.PriceType == domain.DealerPrice && b.Value.Equal(decimal.NewFromInt(1500)) && b.CreatedBy == "admin"
	})).Return(applied, nil).Once()
	tracker.On("Enqueue", "admin", utils.EventPriceUpdateApplied, mock.Anything).Once()

	got, err := svc.ApplyPriceUpdate(ctx, req, "admin")

	require.NoError(t, err)
	assert.Equal(t, 3, got.VariantCount)
	repo.AssertExpectations(t)
	tracker.AssertExpectations(t)
}

func TestApplyPriceUpdate_PercentageBelowMinusHundred(t *testing.T) {
	repo := new(MockPriceUpdateRepository)
	svc := services.NewPriceUpdateService(repo, nil)

	_, err := svc.ApplyPriceUpdate(context.Background(), dto.PriceUpdateRequest{
		ProductIDs: []string{"p-1"},
		PriceType:  "companyPrice",
		UpdateType: "percentage",
		Value:      dec("-100.5"),
	}, "admin")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "ApplyPriceUpdate", mock.Anything, mock.Anything)
}

func TestApplyPriceUpdate_MissingValue(t *testing.T) {
	svc := services.NewPriceUpdateService(new(MockPriceUpdateRepository), nil)

	_, err := svc.ApplyPriceUpdate(context.Background(), dto.PriceUpdateRequest{ProductIDs: []string{"p-1"}, PriceType: "companyPrice", UpdateType: "exact"}, "admin")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRevertPriceUpdate_SecondRevertConflicts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceUpdateRepository)
	svc := services.NewPriceUpdateService(repo, nil)
	repo.On("RevertBatch", ctx, "b-1", "admin", mock.Anything).Return(nil, apperrors.ErrConflict).Once()

	_, err := svc.RevertPriceUpdate(ctx, "b-1", "admin")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestListPriceUpdates_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPriceUpdateRepository)
	svc := services.NewPriceUpdateService(repo, nil)
	repo.On("ListBatches", ctx, 20, 0).Return(nil, nil).Once()

	batches, err := svc.ListPriceUpdates(ctx, 20, 0)

	require.NoError(t, err)
	assert.NotNil(t, batches)
}
