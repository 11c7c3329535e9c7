package dto

import (
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateVariantRequest struct {
	PackingVolume string           `json:"packingVolume" binding:"required"`
	CompanyPrice  *decimal.Decimal `json:"companyPrice" binding:"required"`
	DealerPrice   *decimal.Decimal `json:"dealerPrice" binding:"required"`
	CustomerPrice *decimal.Decimal `json:"customerPrice" binding:"required"`
	Inventory     int              `json:"inventory" binding:"min=0"`
}

// CreateProductRequest creates a product together with its variants.
type CreateProductRequest struct {
	Name        string                 `json:"name" binding:"required,max=200"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	CompanyID   string                 `json:"companyID" binding:"required"`
	PartnerID   *string                `json:"partnerID"`
	Variants    []CreateVariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// UpdateVariantRequest updates an existing variant when VariantID is set, otherwise adds one.
type UpdateVariantRequest struct {
	VariantID     string           `json:"variantID"`
	PackingVolume *string          `json:"packingVolume"`
	CompanyPrice  *decimal.Decimal `json:"companyPrice"`
	DealerPrice   *decimal.Decimal `json:"dealerPrice"`
	CustomerPrice *decimal.Decimal `json:"customerPrice"`
	Inventory     *int             `json:"inventory" binding:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=200"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	IsActive    *bool                  `json:"isActive"`
	Variants    []UpdateVariantRequest `json:"variants" binding:"omitempty,dive"`
}

type ListProductsParams struct {
	CompanyID  string `form:"companyId"`
	PartnerID  string `form:"partnerId"`
	ActiveOnly bool   `form:"activeOnly"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

func (p ListProductsParams) ToFilter() domain.ProductFilter {
	return domain.ProductFilter{
		CompanyID:  p.CompanyID,
		PartnerID:  p.PartnerID,
		ActiveOnly: p.ActiveOnly,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
}

type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}
