package services

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/dto"
)

// CompanySvcFacade defines company operations.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// PartnerSvcFacade defines reseller operations.
type PartnerSvcFacade interface {
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error)
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, params dto.ListPartnersParams) ([]domain.Partner, error)
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error)
	DeactivatePartner(ctx context.Context, partnerID string, userID string) error
	CreditWallet(ctx context.Context, partnerID string, req dto.CreditWalletRequest, userID string) (*domain.Partner, error)
}

// ProductSvcFacade defines catalog operations.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error

	// ExportPriceList renders every matching variant as an .xlsx workbook.
	ExportPriceList(ctx context.Context, filter domain.ProductFilter) ([]byte, error)
}

// PriceUpdateSvcFacade defines the bulk price engine.
type PriceUpdateSvcFacade interface {
	PreviewPriceUpdate(ctx context.Context, params dto.PriceUpdatePreviewParams) (*dto.PriceUpdatePreviewResponse, error)
	ApplyPriceUpdate(ctx context.Context, req dto.PriceUpdateRequest, userID string) (*domain.PriceUpdateBatch, error)
	GetPriceUpdate(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error)
	ListPriceUpdates(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error)
	RevertPriceUpdate(ctx context.Context, batchID string, userID string) (*domain.PriceUpdateBatch, error)
}
