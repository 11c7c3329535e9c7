package services

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// Notifier delivers out-of-band messages to partners.
type Notifier interface {
	// NotifyWithdrawalDecision tells the partner their withdrawal was approved or rejected.
	NotifyWithdrawalDecision(ctx context.Context, w domain.WithdrawalRequest) error
}

// InvoiceRenderer turns an order into a PDF document.
type InvoiceRenderer interface {
	Render(order domain.Order, branded bool) ([]byte, error)
}

// PriceListExporter writes the catalog as a spreadsheet.
type PriceListExporter interface {
	ExportPriceList(products []domain.Product) ([]byte, error)
}
