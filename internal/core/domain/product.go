package domain

import (
	"github.com/shopspring/decimal"
)

// PriceType selects which of the three variant price columns an operation touches.
type PriceType string

const (
	CompanyPrice  PriceType = "companyPrice"
	DealerPrice   PriceType = "dealerPrice"
	CustomerPrice PriceType = "customerPrice"
)

// IsValid reports whether the price type is one of the known columns.
func (p PriceType) IsValid() bool {
	switch p {
	case CompanyPrice, DealerPrice, CustomerPrice:
		return true
	}
	return false
}

// Column returns the product_variants column backing the price type.
func (p PriceType) Column() string {
	switch p {
	case CompanyPrice:
		return "company_price"
	case DealerPrice:
		return "dealer_price"
	case CustomerPrice:
		return "customer_price"
	}
	return ""
}

// Product is a catalog entry; prices live on its variants.
type Product struct {
	ProductID   string           `json:"productID"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	CompanyID   string           `json:"companyID"`
	PartnerID   *string          `json:"partnerID,omitempty"`
	IsActive    bool             `json:"isActive"`
	Variants    []ProductVariant `json:"variants"`
	AuditFields
}

// ProductVariant is a sellable packing of a product (e.g. 500ml, 1L).
type ProductVariant struct {
	VariantID     string          `json:"variantID"`
	ProductID     string          `json:"productID"`
	PackingVolume string          `json:"packingVolume"`
	CompanyPrice  decimal.Decimal `json:"companyPrice"`
	DealerPrice   decimal.Decimal `json:"dealerPrice"`
	CustomerPrice decimal.Decimal `json:"customerPrice"`
	Inventory     int             `json:"inventory"`
}

// Price returns the variant's value for the given price type.
func (v ProductVariant) Price(pt PriceType) decimal.Decimal {
	switch pt {
	case CompanyPrice:
		return v.CompanyPrice
	case DealerPrice:
		return v.DealerPrice
	default:
		return v.CustomerPrice
	}
}

// SetPrice overwrites the variant's value for the given price type.
func (v *ProductVariant) SetPrice(pt PriceType, price decimal.Decimal) {
	switch pt {
	case CompanyPrice:
		v.CompanyPrice = price
	case DealerPrice:
		v.DealerPrice = price
	default:
		v.CustomerPrice = price
	}
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CompanyID  string
	PartnerID  string
	ActiveOnly bool
	Limit      int
	Offset     int
}
