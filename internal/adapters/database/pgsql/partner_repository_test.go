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

const creditWalletSQL = `UPDATE partners SET wallet_balance = wallet_balance \+`

func walletCredit(partnerID string) domain.WalletCredit {
	return domain.WalletCredit{
		CreditID:    "c-1",
		PartnerID:   partnerID,
		Amount:      decimal.NewFromInt(300),
		Note:        "march commission",
		AuditFields: domain.AuditFields{CreatedAt: testNow, CreatedBy: "admin-1", LastUpdatedAt: testNow, LastUpdatedBy: "admin-1"},
	}
}

func TestCreditWallet_AddsBalanceAndRecordsCredit(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxPartnerRepository(pool, time.Second)

	pool.ExpectBegin()
	pool.ExpectExec(creditWalletSQL).
		WithArgs("p-1", pgxmock.AnyArg(), pgxmock.AnyArg(), "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec(`INSERT INTO wallet_credits`).
		WithArgs("c-1", "p-1", pgxmock.AnyArg(), "march commission", pgxmock.AnyArg(), "admin-1", pgxmock.AnyArg(), "admin-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()
	pool.ExpectQuery(`FROM partners p\s+WHERE p.partner_id`).
		WithArgs("p-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"partner_id", "name", "email", "phone", "gender", "blood_group", "specialization", "address",
			"wallet_balance", "is_active", "created_at", "created_by", "last_updated_at", "last_updated_by", "days",
		}).AddRow(
			"p-1", "Happy Paws", "paws@example.com", "+911234567890", domain.GenderFemale, nil, "vet", "Pune",
			decimal.NewFromInt(300), true, testNow, "admin-1", testNow, "admin-1", []string{"monday"},
		))

	p, err := repo.CreditWallet(context.Background(), walletCredit("p-1"))

	require.NoError(t, err)
	assert.True(t, p.WalletBalance.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, []domain.DayOfWeek{domain.Monday}, p.AvailableDays)
}

func TestCreditWallet_InactivePartnerRecordsNothing(t *testing.T) {
	pool := newMockPool(t)
	repo := newPgxPartnerRepository(pool, time.Second)

	pool.ExpectBegin()
	pool.ExpectExec(creditWalletSQL).
		WithArgs("p-9", pgxmock.AnyArg(), pgxmock.AnyArg(), "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	pool.ExpectRollback()

	_, err := repo.CreditWallet(context.Background(), walletCredit("p-9"))

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
