package dto

import (
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	VariantID string `json:"variantID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest places an order; prices are taken from the catalog, never from the client.
type CreateOrderRequest struct {
	PartnerID       *string            `json:"partnerID"`
	CustomerName    string             `json:"customerName" binding:"required,max=200"`
	CustomerEmail   string             `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	Discount        *decimal.Decimal   `json:"discount"`
	ShippingCost    *decimal.Decimal   `json:"shippingCost"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipped delivered cancelled"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=paid"`
}

type ListOrdersParams struct {
	PartnerID string `form:"partnerId"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

type ListOrdersResponse struct {
	Orders    []domain.Order `json:"orders"`
	NextToken *string        `json:"nextToken,omitempty"`
}

type InvoiceParams struct {
	Branded bool `form:"branded"`
}
