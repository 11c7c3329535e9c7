package dto

import (
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceUpdateRequest describes a bulk price rule and the variants it applies to.
type PriceUpdateRequest struct {
	CompanyIDs        []string         `json:"companyIds"`
	PartnerIDs        []string         `json:"partnerIds"`
	ProductIDs        []string         `json:"productIds"`
	UpdateAllProducts bool             `json:"updateAllProducts"`
	PriceType         string           `json:"priceType" binding:"required,pricetype"`
	UpdateType        string           `json:"updateType" binding:"required,updatetype"`
	Value             *decimal.Decimal `json:"value" binding:"required"`
}

func (r PriceUpdateRequest) Scope() domain.PriceScope {
	return domain.PriceScope{
		CompanyIDs:        r.CompanyIDs,
		PartnerIDs:        r.PartnerIDs,
		ProductIDs:        r.ProductIDs,
		UpdateAllProducts: r.UpdateAllProducts,
	}
}

// PriceUpdatePreviewParams is the query-string form of PriceUpdateRequest.
// Value stays a string so malformed numbers are reported as validation errors.
type PriceUpdatePreviewParams struct {
	CompanyIDs        []string `form:"companyIds"`
	PartnerIDs        []string `form:"partnerIds"`
	ProductIDs        []string `form:"productIds"`
	UpdateAllProducts bool     `form:"updateAllProducts"`
	PriceType         string   `form:"priceType" binding:"required,pricetype"`
	UpdateType        string   `form:"updateType" binding:"required,updatetype"`
	Value             string   `form:"value" binding:"required"`
}

func (p PriceUpdatePreviewParams) Scope() domain.PriceScope {
	return domain.PriceScope{
		CompanyIDs:        p.CompanyIDs,
		PartnerIDs:        p.PartnerIDs,
		ProductIDs:        p.ProductIDs,
		UpdateAllProducts: p.UpdateAllProducts,
	}
}

type PriceUpdatePreviewResponse struct {
	PriceType    domain.PriceType       `json:"priceType"`
	UpdateType   domain.PriceUpdateType `json:"updateType"`
	Value        decimal.Decimal        `json:"value"`
	VariantCount int                    `json:"variantCount"`
	Changes      []domain.PriceChange   `json:"changes"`
}

type ListPriceUpdatesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

type ListPriceUpdatesResponse struct {
	Batches []domain.PriceUpdateBatch `json:"batches"`
}
