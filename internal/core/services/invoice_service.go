package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/platform/metrics"
	"github.com/animal-wellness/aw_backend/internal/utils"
)

type invoiceService struct {
	BaseService
	orderRepo portsrepo.OrderReader
	renderer  portssvc.InvoiceRenderer
}

func NewInvoiceService(orderRepo portsrepo.OrderReader, renderer portssvc.InvoiceRenderer, tracker utils.EventTracker) portssvc.InvoiceSvc {
	return &invoiceService{
		BaseService: BaseService{Tracker: tracker},
		orderRepo:   orderRepo,
		renderer:    renderer,
	}
}

var _ portssvc.InvoiceSvc = (*invoiceService)(nil)

// GenerateInvoice renders the order as a PDF; userID is the caller downloading it.
func (s *invoiceService) GenerateInvoice(ctx context.Context, orderID string, branded bool, userID string) (string, []byte, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return "", nil, err
	}

	pdf, err := s.renderer.Render(*order, branded)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice", slog.String("order_id", orderID))
		return "", nil, fmt.Errorf("failed to render invoice for order %s: %w", order.OrderNumber, err)
	}

	metrics.InvoicesRenderedTotal.WithLabelValues(strconv.FormatBool(branded)).Inc()
	s.track(userID, utils.EventInvoiceDownloaded, map[string]any{
		"order_id": orderID,
		"branded":  branded,
	})
	s.LogDebug(ctx, "Invoice rendered", slog.String("order_id", orderID), slog.Int("bytes", len(pdf)))
	return fmt.Sprintf("invoice-%s.pdf", order.OrderNumber), pdf, nil
}
