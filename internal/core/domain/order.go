package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Order is a sale of catalog variants, optionally placed on behalf of a partner.
type Order struct {
	OrderID         string          `json:"orderID"`
	OrderNumber     string          `json:"orderNumber"`
	PartnerID       *string         `json:"partnerID,omitempty"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes"`
	OrderDate       time.Time       `json:"orderDate"`
	Items           []OrderItem     `json:"items"`
	AuditFields
}

// OrderItem is one line of an order; prices are captured at order time.
type OrderItem struct {
	OrderItemID   string          `json:"orderItemID"`
	OrderID       string          `json:"orderID"`
	ProductID     string          `json:"productID"`
	VariantID     string          `json:"variantID"`
	CompanyID     string          `json:"companyID"`
	ProductName   string          `json:"productName"`
	PackingVolume string          `json:"packingVolume"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	PartnerID string
	Status    OrderStatus
	Limit     int
	// Cursor for keyset pagination, see utils/pagination.
	AfterCreatedAt *time.Time
	AfterID        string
}
