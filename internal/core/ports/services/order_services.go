package services

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/dto"
)

// OrderSvcFacade defines order processing.
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, *string, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, userID string) (*domain.Order, error)
	MarkOrderPaid(ctx context.Context, orderID string, userID string) (*domain.Order, error)
}

// InvoiceSvc renders order invoices.
type InvoiceSvc interface {
	// GenerateInvoice returns the download file name and the PDF bytes. userID is the downloading caller.
	GenerateInvoice(ctx context.Context, orderID string, branded bool, userID string) (string, []byte, error)
}
