package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/animal-wellness/aw_backend/internal/utils/pricing"
	"github.com/jackc/pgx/v5"
)

type PgxPriceUpdateRepository struct {
	BaseRepository
}

func newPgxPriceUpdateRepository(pool DBPool) portsrepo.PriceUpdateRepositoryFacade {
	return &PgxPriceUpdateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PriceUpdateRepositoryFacade = (*PgxPriceUpdateRepository)(nil)

// scopeQuery selects the variants matched by a scope. The id lists are OR-ed; $4 selects everything.
const scopeQuery = `
	SELECT v.variant_id, v.product_id, v.packing_volume, v.company_price, v.dealer_price, v.customer_price, v.inventory, p.name
	FROM product_variants v
	JOIN products p ON p.product_id = v.product_id
	WHERE $4
		OR p.company_id = ANY($1)
		OR p.partner_id = ANY($2)
		OR p.product_id = ANY($3)
	ORDER BY v.variant_id
`

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

type scopeQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func resolveScope(ctx context.Context, q scopeQuerier, scope domain.PriceScope, forUpdate bool) ([]domain.ProductVariant, map[string]string, error) {
	query := scopeQuery
	if forUpdate {
		query += ` FOR UPDATE OF v`
	}
	rows, err := q.Query(ctx, query, nonNil(scope.CompanyIDs), nonNil(scope.PartnerIDs), nonNil(scope.ProductIDs), scope.UpdateAllProducts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve price update scope: %w", err)
	}
	defer rows.Close()

	variants := []domain.ProductVariant{}
	names := make(map[string]string)
	for rows.Next() {
		var (
			v    domain.ProductVariant
			name string
		)
		if err := rows.Scan(&v.VariantID, &v.ProductID, &v.PackingVolume, &v.CompanyPrice, &v.DealerPrice, &v.CustomerPrice, &v.Inventory, &name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan scoped variant: %w", err)
		}
		variants = append(variants, v)
		names[v.ProductID] = name
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating scoped variants: %w", err)
	}
	return variants, names, nil
}

func (r *PgxPriceUpdateRepository) ResolveScope(ctx context.Context, scope domain.PriceScope) ([]domain.ProductVariant, map[string]string, error) {
	return resolveScope(ctx, r.Pool, scope, false)
}

func (r *PgxPriceUpdateRepository) ApplyPriceUpdate(ctx context.Context, batch domain.PriceUpdateBatch) (*domain.PriceUpdateBatch, error) {
	column := batch.PriceType.Column()
	if column == "" {
		return nil, fmt.Errorf("%w: unknown price type %q", apperrors.ErrValidation, batch.PriceType)
	}

	err := r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		variants, names, err := resolveScope(ctx, tx, batch.Scope, true)
		if err != nil {
			return err
		}
		if len(variants) == 0 {
			return fmt.Errorf("%w: no product variants match the selection", apperrors.ErrNotFound)
		}

		changes, err := pricing.Plan(variants, names, batch.PriceType, batch.UpdateType, batch.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		ids := make([]string, len(changes))
		oldPrices := make([]string, len(changes))
		newPrices := make([]string, len(changes))
		for i, c := range changes {
			ids[i] = c.VariantID
			oldPrices[i] = c.OldPrice.StringFixed(2)
			newPrices[i] = c.NewPrice.StringFixed(2)
		}

		// column comes from PriceType.Column, never from user input.
		update := fmt.Sprintf(`
			UPDATE product_variants v
			SET %s = c.new_price::numeric, last_updated_at = $3
			FROM unnest($1::text[], $2::text[]) AS c(variant_id, new_price)
			WHERE v.variant_id = c.variant_id;
		`, column)
		cmdTag, err := tx.Exec(ctx, update, ids, newPrices, batch.CreatedAt)
		if err != nil {
			return mapPgError(err, "failed to apply price update")
		}
		if int(cmdTag.RowsAffected()) != len(ids) {
			return fmt.Errorf("price update touched %d variants, expected %d", cmdTag.RowsAffected(), len(ids))
		}

		insertBatch := `
			INSERT INTO price_update_batches (batch_id, scope, price_type, update_type, value, variant_count, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err = tx.Exec(ctx, insertBatch,
			batch.BatchID, batch.Scope, batch.PriceType, batch.UpdateType, batch.Value, len(changes), batch.CreatedBy, batch.CreatedAt,
		)
		if err != nil {
			return mapPgError(err, "failed to store price update batch %s", batch.BatchID)
		}

		insertItems := `
			INSERT INTO price_update_items (batch_id, variant_id, old_price, new_price)
			SELECT $1, i.variant_id, i.old_price::numeric, i.new_price::numeric
			FROM unnest($2::text[], $3::text[], $4::text[]) AS i(variant_id, old_price, new_price);
		`
		if _, err := tx.Exec(ctx, insertItems, batch.BatchID, ids, oldPrices, newPrices); err != nil {
			return mapPgError(err, "failed to store price update items for batch %s", batch.BatchID)
		}

		batch.VariantCount = len(changes)
		batch.Items = changes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *PgxPriceUpdateRepository) RevertBatch(ctx context.Context, batchID string, userID string, now time.Time) (*domain.PriceUpdateBatch, error) {
	err := r.WithTx(ctx, 0, func(ctx context.Context, tx pgx.Tx) error {
		var (
			priceType  domain.PriceType
			revertedAt *time.Time
		)
		err := tx.QueryRow(ctx, `SELECT price_type, reverted_at FROM price_update_batches WHERE batch_id = $1 FOR UPDATE;`, batchID).
			Scan(&priceType, &revertedAt)
		if err != nil {
			return mapPgError(err, "price update batch %s", batchID)
		}
		if revertedAt != nil {
			return fmt.Errorf("%w: price update batch %s was already reverted", apperrors.ErrConflict, batchID)
		}

		column := priceType.Column()
		if column == "" {
			return fmt.Errorf("batch %s has unknown price type %q", batchID, priceType)
		}
		restore := fmt.Sprintf(`
			UPDATE product_variants v
			SET %s = i.old_price, last_updated_at = $2
			FROM price_update_items i
			WHERE i.batch_id = $1 AND v.variant_id = i.variant_id;
		`, column)
		if _, err := tx.Exec(ctx, restore, batchID, now); err != nil {
			return mapPgError(err, "failed to restore prices for batch %s", batchID)
		}

		_, err = tx.Exec(ctx, `UPDATE price_update_batches SET reverted_at = $2, reverted_by = $3 WHERE batch_id = $1;`, batchID, now, userID)
		if err != nil {
			return fmt.Errorf("failed to mark batch %s reverted: %w", batchID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindBatchByID(ctx, batchID)
}

const batchColumns = `batch_id, scope, price_type, update_type, value, variant_count, created_by, created_at, reverted_at, reverted_by`

func scanBatch(row pgx.Row) (*domain.PriceUpdateBatch, error) {
	var b domain.PriceUpdateBatch
	err := row.Scan(
		&b.BatchID,
		&b.Scope,
		&b.PriceType,
		&b.UpdateType,
		&b.Value,
		&b.VariantCount,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.RevertedAt,
		&b.RevertedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgxPriceUpdateRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PriceUpdateBatch, error) {
	b, err := scanBatch(r.Pool.QueryRow(ctx, `SELECT `+batchColumns+` FROM price_update_batches WHERE batch_id = $1;`, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: price update batch %s", apperrors.ErrNotFound, batchID)
		}
		return nil, fmt.Errorf("failed to find price update batch %s: %w", batchID, err)
	}

	query := `
		SELECT i.variant_id, v.product_id, p.name, v.packing_volume, i.old_price, i.new_price
		FROM price_update_items i
		JOIN product_variants v ON v.variant_id = i.variant_id
		JOIN products p ON p.product_id = v.product_id
		WHERE i.batch_id = $1
		ORDER BY i.variant_id;
	`
	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of batch %s: %w", batchID, err)
	}
	defer rows.Close()

	b.Items = []domain.PriceChange{}
	for rows.Next() {
		var c domain.PriceChange
		if err := rows.Scan(&c.VariantID, &c.ProductID, &c.ProductName, &c.PackingVolume, &c.OldPrice, &c.NewPrice); err != nil {
			return nil, fmt.Errorf("failed to scan price update item: %w", err)
		}
		b.Items = append(b.Items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price update items: %w", err)
	}
	return b, nil
}

func (r *PgxPriceUpdateRepository) ListBatches(ctx context.Context, limit int, offset int) ([]domain.PriceUpdateBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM price_update_batches ORDER BY created_at DESC, batch_id DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query price update batches: %w", err)
	}
	defer rows.Close()

	batches := []domain.PriceUpdateBatch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price update batch: %w", err)
		}
		batches = append(batches, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price update batches: %w", err)
	}
	return batches, nil
}
