package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/core/services"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice_NamesFileAfterOrderNumberAndTracksCaller(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	renderer := new(MockRenderer)
	tracker := new(MockTracker)
	svc := services.NewInvoiceService(orders, renderer, tracker)

	order := &domain.Order{OrderID: "o-1", OrderNumber: "ORD-20240101-ABCDEF", AuditFields: domain.AuditFields{CreatedBy: "admin"}}
	orders.On("FindOrderByID", ctx, "o-1").Return(order, nil).Once()
	renderer.On("Render", *order, true).Return([]byte("%PDF-1.3"), nil).Once()
	// The order was placed by "admin"; the partner user downloading it is who gets tracked.
	tracker.On("Enqueue", "partner-user", utils.EventInvoiceDownloaded, mock.Anything).Once()

	name, pdf, err := svc.GenerateInvoice(ctx, "o-1", true, "partner-user")

	require.NoError(t, err)
	assert.Equal(t, "invoice-ORD-20240101-ABCDEF.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	renderer.AssertExpectations(t)
	tracker.AssertExpectations(t)
}

func TestGenerateInvoice_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	renderer := new(MockRenderer)
	svc := services.NewInvoiceService(orders, renderer, nil)
	orders.On("FindOrderByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := svc.GenerateInvoice(ctx, "missing", false, "admin")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestGenerateInvoice_RenderFailure(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	renderer := new(MockRenderer)
	svc := services.NewInvoiceService(orders, renderer, nil)
	order := &domain.Order{OrderID: "o-2", OrderNumber: "ORD-2"}
	orders.On("FindOrderByID", ctx, "o-2").Return(order, nil).Once()
	renderer.On("Render", *order, false).Return(nil, errors.New("boom")).Once()

	_, _, err := svc.GenerateInvoice(ctx, "o-2", false, "admin")

	assert.Error(t, err)
}
