package repositories

import (
	"context"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// ProductReader defines read operations for the catalog. Products are returned with their variants.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

	// FindVariantsByIDs returns variants keyed by id together with their parent product.
	FindVariantsByIDs(ctx context.Context, variantIDs []string) (map[string]domain.ProductVariant, map[string]domain.Product, error)
}

// ProductWriter defines write operations for the catalog.
type ProductWriter interface {
	// SaveProduct inserts the product and all its variants in one transaction.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct updates the product row, updates variants that exist and inserts new ones.
	UpdateProduct(ctx context.Context, product domain.Product) error

	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
