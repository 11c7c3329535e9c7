package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	existingDistributionsSQL = `SELECT business_partner_id FROM distributions`
	insertDistributionSQL    = `INSERT INTO distributions`
)

func marchDistributions(ids ...string) []domain.Distribution {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Distribution, len(ids))
	for i, id := range ids {
		out[i] = domain.Distribution{
			DistributionID:    "d-" + id,
			BusinessPartnerID: id,
			PeriodStart:       start,
			PeriodEnd:         end,
			TotalRevenue:      decimal.NewFromInt(10000),
			SharePercentage:   decimal.NewFromInt(25),
			ShareAmount:       decimal.NewFromInt(2500),
			Status:            domain.DistributionPending,
			AuditFields:       domain.AuditFields{CreatedAt: testNow, CreatedBy: "admin-1", LastUpdatedAt: testNow, LastUpdatedBy: "admin-1"},
		}
	}
	return out
}

func TestSaveDistributions_InsertsAllRowsInOneBatch(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxDistributionRepository(pool)
	rows := marchDistributions("bp-1", "bp-2")

	pool.ExpectBegin()
	pool.ExpectQuery(existingDistributionsSQL).
		WithArgs([]string{"bp-1", "bp-2"}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"business_partner_id"}))
	batch := pool.ExpectBatch()
	for _, d := range rows {
		batch.ExpectExec(insertDistributionSQL).
			WithArgs(d.DistributionID, d.BusinessPartnerID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), domain.DistributionPending, "", pgxmock.AnyArg(), "admin-1",
				pgxmock.AnyArg(), "admin-1").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	pool.ExpectCommit()

	require.NoError(t, repo.SaveDistributions(context.Background(), rows))
}

func TestSaveDistributions_ExistingPeriodWritesNothing(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxDistributionRepository(pool)

	pool.ExpectBegin()
	pool.ExpectQuery(existingDistributionsSQL).
		WithArgs([]string{"bp-1", "bp-2"}, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"business_partner_id"}).AddRow("bp-2"))
	pool.ExpectRollback()

	err := repo.SaveDistributions(context.Background(), marchDistributions("bp-1", "bp-2"))

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "bp-2")
}

func TestSaveDistributions_EmptyIsNoop(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxDistributionRepository(pool)

	require.NoError(t, repo.SaveDistributions(context.Background(), nil))
}
