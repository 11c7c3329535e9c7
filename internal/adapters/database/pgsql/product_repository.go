package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool DBPool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const (
	productColumns = `p.product_id, p.name, p.description, p.category, p.company_id, p.partner_id, p.is_active, p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`
	variantColumns = `v.variant_id, v.product_id, v.packing_volume, v.company_price, v.dealer_price, v.customer_price, v.inventory`
)

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.CompanyID,
		&p.PartnerID,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Variants = []domain.ProductVariant{}
	return &p, nil
}

func scanVariant(row pgx.Row) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := row.Scan(
		&v.VariantID,
		&v.ProductID,
		&v.PackingVolume,
		&v.CompanyPrice,
		&v.DealerPrice,
		&v.CustomerPrice,
		&v.Inventory,
	)
	return v, err
}

const insertVariantQuery = `
	INSERT INTO product_variants (variant_id, product_id, packing_volume, company_price, dealer_price, customer_price, inventory, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8);
`

func (r *PgxProductRepository) SaveProduct(ctx context.Context, p domain.Product) error {
	return r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO products (product_id, name, description, category, company_id, partner_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err := tx.Exec(ctx, query,
			p.ProductID, p.Name, p.Description, p.Category, p.CompanyID, p.PartnerID, p.IsActive,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
		if err != nil {
			return mapPgError(err, "failed to save product %q", p.Name)
		}

		batch := &pgx.Batch{}
		for _, v := range p.Variants {
			batch.Queue(insertVariantQuery, v.VariantID, p.ProductID, v.PackingVolume, v.CompanyPrice, v.DealerPrice, v.CustomerPrice, v.Inventory, p.CreatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapPgError(err, "failed to save variants of product %s", p.ProductID)
		}
		return nil
	})
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	return r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE products SET name = $2, description = $3, category = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
			WHERE product_id = $1;
		`
		cmdTag, err := tx.Exec(ctx, query, p.ProductID, p.Name, p.Description, p.Category, p.IsActive, p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return mapPgError(err, "failed to update product %s", p.ProductID)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, p.ProductID)
		}

		upsert := `
			INSERT INTO product_variants (variant_id, product_id, packing_volume, company_price, dealer_price, customer_price, inventory, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (variant_id) DO UPDATE SET
				packing_volume = EXCLUDED.packing_volume,
				company_price = EXCLUDED.company_price,
				dealer_price = EXCLUDED.dealer_price,
				customer_price = EXCLUDED.customer_price,
				inventory = EXCLUDED.inventory,
				last_updated_at = EXCLUDED.last_updated_at
			WHERE product_variants.product_id = EXCLUDED.product_id;
		`
		batch := &pgx.Batch{}
		for _, v := range p.Variants {
			batch.Queue(upsert, v.VariantID, p.ProductID, v.PackingVolume, v.CompanyPrice, v.DealerPrice, v.CustomerPrice, v.Inventory, p.LastUpdatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return mapPgError(err, "failed to update variants of product %s", p.ProductID)
		}
		return nil
	})
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.product_id = $1;`
	p, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, mapPgError(err, "product %s", productID)
	}
	if err := r.attachVariants(ctx, map[string]*domain.Product{p.ProductID: p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE ($1 = '' OR p.company_id = $1)
			AND ($2 = '' OR p.partner_id = $2)
			AND ($3 = FALSE OR p.is_active)
		ORDER BY p.name, p.product_id
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, filter.CompanyID, filter.PartnerID, filter.ActiveOnly, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	byID := make(map[string]*domain.Product)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
		byID[p.ProductID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	rows.Close()

	if err := r.attachVariants(ctx, byID); err != nil {
		return nil, err
	}

	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = *p
	}
	return out, nil
}

// attachVariants loads the variants of every product in byID with a single query.
func (r *PgxProductRepository) attachVariants(ctx context.Context, byID map[string]*domain.Product) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query := `SELECT ` + variantColumns + ` FROM product_variants v WHERE v.product_id = ANY($1) ORDER BY v.product_id, v.created_at, v.variant_id;`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query product variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return fmt.Errorf("failed to scan variant row: %w", err)
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return rows.Err()
}

func (r *PgxProductRepository) FindVariantsByIDs(ctx context.Context, variantIDs []string) (map[string]domain.ProductVariant, map[string]domain.Product, error) {
	variants := make(map[string]domain.ProductVariant)
	products := make(map[string]domain.Product)
	if len(variantIDs) == 0 {
		return variants, products, nil
	}

	query := `
		SELECT ` + variantColumns + `, ` + productColumns + `
		FROM product_variants v
		JOIN products p ON p.product_id = v.product_id
		WHERE v.variant_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, variantIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query variants by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v domain.ProductVariant
			p domain.Product
		)
		err := rows.Scan(
			&v.VariantID, &v.ProductID, &v.PackingVolume, &v.CompanyPrice, &v.DealerPrice, &v.CustomerPrice, &v.Inventory,
			&p.ProductID, &p.Name, &p.Description, &p.Category, &p.CompanyID, &p.PartnerID, &p.IsActive,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan variant row: %w", err)
		}
		variants[v.VariantID] = v
		products[p.ProductID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating variant rows: %w", err)
	}

	if len(variants) != len(uniqueStrings(variantIDs)) {
		missing := []string{}
		for _, id := range variantIDs {
			if _, ok := variants[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, nil, fmt.Errorf("%w: variants %v", apperrors.ErrNotFound, missing)
	}
	return variants, products, nil
}

func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	query := `UPDATE products SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE product_id = $1 AND is_active;`
	cmdTag, err := r.Pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
