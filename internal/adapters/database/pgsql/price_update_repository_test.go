package pgsql

import (
	"context"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockBatchSQL = `SELECT price_type, reverted_at FROM price_update_batches`

func TestRevertBatch_RestoresOldPricesOnce(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxPriceUpdateRepository(pool)

	pool.ExpectBegin()
	pool.ExpectQuery(lockBatchSQL).
		WithArgs("b-1").
		WillReturnRows(pgxmock.NewRows([]string{"price_type", "reverted_at"}).AddRow(domain.DealerPrice, nil))
	pool.ExpectExec(`SET dealer_price = i.old_price`).
		WithArgs("b-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	pool.ExpectExec(`UPDATE price_update_batches SET reverted_at`).
		WithArgs("b-1", pgxmock.AnyArg(), "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()
	pool.ExpectQuery(`FROM price_update_batches WHERE batch_id`).
		WithArgs("b-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"batch_id", "scope", "price_type", "update_type", "value", "variant_count", "created_by", "created_at", "reverted_at", "reverted_by",
		}).AddRow(
			"b-1", domain.PriceScope{UpdateAllProducts: true}, domain.DealerPrice, domain.UpdatePercentage, decimal.NewFromInt(10), 3,
			"admin-1", testNow, ptr(testNow), ptr("admin-1"),
		))
	pool.ExpectQuery(`FROM price_update_items i`).
		WithArgs("b-1").
		WillReturnRows(pgxmock.NewRows([]string{"variant_id", "product_id", "name", "packing_volume", "old_price", "new_price"}))

	b, err := repo.RevertBatch(context.Background(), "b-1", "admin-1", testNow)

	require.NoError(t, err)
	require.NotNil(t, b.RevertedAt)
	assert.Equal(t, "admin-1", *b.RevertedBy)
}

func TestRevertBatch_SecondRevertIsConflict(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxPriceUpdateRepository(pool)

	pool.ExpectBegin()
	pool.ExpectQuery(lockBatchSQL).
		WithArgs("b-1").
		WillReturnRows(pgxmock.NewRows([]string{"price_type", "reverted_at"}).AddRow(domain.DealerPrice, ptr(testNow)))
	pool.ExpectRollback()

	_, err := repo.RevertBatch(context.Background(), "b-1", "admin-1", testNow)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "already reverted")
}

func TestRevertBatch_UnknownBatch(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxPriceUpdateRepository(pool)

	pool.ExpectBegin()
	pool.ExpectQuery(lockBatchSQL).
		WithArgs("b-404").
		WillReturnRows(pgxmock.NewRows([]string{"price_type", "reverted_at"}))
	pool.ExpectRollback()

	_, err := repo.RevertBatch(context.Background(), "b-404", "admin-1", testNow)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
