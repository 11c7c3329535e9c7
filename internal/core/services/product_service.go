package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exportPageSize bounds how many products one export reads per query.
const exportPageSize = 500

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	exporter    portssvc.PriceListExporter
}

func NewProductService(productRepo portsrepo.ProductRepositoryFacade, exporter portssvc.PriceListExporter) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, exporter: exporter}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func validPrice(name string, p *decimal.Decimal) (decimal.Decimal, error) {
	if p == nil {
		return decimal.Zero, fmt.Errorf("%w: %s is required", apperrors.ErrValidation, name)
	}
	if p.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
	}
	return utils.RoundMoney(*p), nil
}

func newVariant(productID string, req dto.CreateVariantRequest) (domain.ProductVariant, error) {
	v := domain.ProductVariant{
		VariantID:     uuid.NewString(),
		ProductID:     productID,
		PackingVolume: strings.TrimSpace(req.PackingVolume),
		Inventory:     req.Inventory,
	}
	var err error
	if v.CompanyPrice, err = validPrice("companyPrice", req.CompanyPrice); err != nil {
		return v, err
	}
	if v.DealerPrice, err = validPrice("dealerPrice", req.DealerPrice); err != nil {
		return v, err
	}
	if v.CustomerPrice, err = validPrice("customerPrice", req.CustomerPrice); err != nil {
		return v, err
	}
	if v.Inventory < 0 {
		return v, fmt.Errorf("%w: inventory must not be negative", apperrors.ErrValidation)
	}
	return v, nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if len(req.Variants) == 0 {
		return nil, fmt.Errorf("%w: a product needs at least one variant", apperrors.ErrValidation)
	}

	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		CompanyID:   req.CompanyID,
		PartnerID:   req.PartnerID,
		IsActive:    true,
		AuditFields: newAudit(userID, s.now()),
	}
	for _, vr := range req.Variants {
		v, err := newVariant(product.ProductID, vr)
		if err != nil {
			return nil, err
		}
		product.Variants = append(product.Variants, v)
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("name", product.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Product created",
		slog.String("product_id", product.ProductID),
		slog.Int("variants", len(product.Variants)))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get product", slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	index := make(map[string]int, len(product.Variants))
	for i, v := range product.Variants {
		index[v.VariantID] = i
	}
	for _, vr := range req.Variants {
		if vr.VariantID == "" {
			create := dto.CreateVariantRequest{
				CompanyPrice:  vr.CompanyPrice,
				DealerPrice:   vr.DealerPrice,
				CustomerPrice: vr.CustomerPrice,
			}
			if vr.PackingVolume != nil {
				create.PackingVolume = *vr.PackingVolume
			}
			if vr.Inventory != nil {
				create.Inventory = *vr.Inventory
			}
			v, err := newVariant(product.ProductID, create)
			if err != nil {
				return nil, err
			}
			product.Variants = append(product.Variants, v)
			continue
		}

		i, ok := index[vr.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: variant %s does not belong to product %s", apperrors.ErrValidation, vr.VariantID, productID)
		}
		v := &product.Variants[i]
		if vr.PackingVolume != nil {
			v.PackingVolume = strings.TrimSpace(*vr.PackingVolume)
		}
		for pt, p := range map[domain.PriceType]*decimal.Decimal{
			domain.CompanyPrice:  vr.CompanyPrice,
			domain.DealerPrice:   vr.DealerPrice,
			domain.CustomerPrice: vr.CustomerPrice,
		} {
			if p == nil {
				continue
			}
			price, err := validPrice(string(pt), p)
			if err != nil {
				return nil, err
			}
			v.SetPrice(pt, price)
		}
		if vr.Inventory != nil {
			if *vr.Inventory < 0 {
				return nil, fmt.Errorf("%w: inventory must not be negative", apperrors.ErrValidation)
			}
			v.Inventory = *vr.Inventory
		}
	}
	touch(&product.AuditFields, userID, s.now())

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, err
	}
	s.LogInfo(ctx, "Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	if err := s.productRepo.DeactivateProduct(ctx, productID, userID, s.now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate product", slog.String("product_id", productID))
		}
		return err
	}
	s.LogInfo(ctx, "Product deactivated", slog.String("product_id", productID))
	return nil
}

// ExportPriceList pages through every product matching filter, ignoring its limit and offset.
func (s *productService) ExportPriceList(ctx context.Context, filter domain.ProductFilter) ([]byte, error) {
	var all []domain.Product
	filter.Limit = exportPageSize
	for filter.Offset = 0; ; filter.Offset += exportPageSize {
		page, err := s.productRepo.ListProducts(ctx, filter)
		if err != nil {
			s.LogError(ctx, err, "Failed to read products for export")
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}

	out, err := s.exporter.ExportPriceList(all)
	if err != nil {
		s.LogError(ctx, err, "Failed to build price list workbook")
		return nil, err
	}
	s.LogInfo(ctx, "Price list exported", slog.Int("products", len(all)))
	return out, nil
}
