package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// OrderReader defines read operations for orders. Orders are returned with their items.
type OrderReader interface {
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders returns a page of orders newest first and the token for the next page, if any.
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, *string, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	// SaveOrder decrements inventory for every item and inserts the order in one transaction.
	// It returns apperrors.ErrConflict when a variant has insufficient stock.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderStatus moves an order from one status to another; a cancelled order restocks its items.
	// It returns apperrors.ErrConflict when the order is no longer in status from.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error

	// MarkOrderPaid flips an unpaid order to paid and inserts the revenue rows in one transaction.
	MarkOrderPaid(ctx context.Context, orderID string, revenue []domain.RevenueTransaction, userID string, now time.Time) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
