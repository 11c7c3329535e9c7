package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceUpdateType is the rule applied to every variant in a bulk price update.
type PriceUpdateType string

const (
	UpdateExact       PriceUpdateType = "exact"
	UpdatePercentage  PriceUpdateType = "percentage"
	UpdateAddition    PriceUpdateType = "addition"
	UpdateSubtraction PriceUpdateType = "subtraction"
)

// IsValid reports whether the update type is one of the four supported rules.
func (u PriceUpdateType) IsValid() bool {
	switch u {
	case UpdateExact, UpdatePercentage, UpdateAddition, UpdateSubtraction:
		return true
	}
	return false
}

// PriceScope selects the variants a bulk update applies to. The id lists are OR-ed together.
type PriceScope struct {
	CompanyIDs        []string `json:"companyIds,omitempty"`
	PartnerIDs        []string `json:"partnerIds,omitempty"`
	ProductIDs        []string `json:"productIds,omitempty"`
	UpdateAllProducts bool     `json:"updateAllProducts"`
}

// IsEmpty reports whether the scope selects nothing.
func (s PriceScope) IsEmpty() bool {
	return !s.UpdateAllProducts && len(s.CompanyIDs) == 0 && len(s.PartnerIDs) == 0 && len(s.ProductIDs) == 0
}

// PriceChange is the computed effect of a rule on one variant.
type PriceChange struct {
	VariantID     string          `json:"variantID"`
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	PackingVolume string          `json:"packingVolume"`
	OldPrice      decimal.Decimal `json:"oldPrice"`
	NewPrice      decimal.Decimal `json:"newPrice"`
}

// PriceUpdateBatch is the audit record of one applied bulk update.
type PriceUpdateBatch struct {
	BatchID      string          `json:"batchID"`
	Scope        PriceScope      `json:"scope"`
	PriceType    PriceType       `json:"priceType"`
	UpdateType   PriceUpdateType `json:"updateType"`
	Value        decimal.Decimal `json:"value"`
	VariantCount int             `json:"variantCount"`
	Items        []PriceChange   `json:"items,omitempty"`
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
	RevertedAt   *time.Time      `json:"revertedAt,omitempty"`
	RevertedBy   *string         `json:"revertedBy,omitempty"`
}
