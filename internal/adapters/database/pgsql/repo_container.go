package pgsql

import (
	"time"

	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
// txTimeout bounds the multi-statement partner and order writes.
func NewRepositoryProvider(dbPool *pgxpool.Pool, txTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:            newPgxUserRepository(dbPool),
		CompanyRepo:         newPgxCompanyRepository(dbPool),
		PartnerRepo:         newPgxPartnerRepository(dbPool, txTimeout),
		ProductRepo:         newPgxProductRepository(dbPool),
		PriceUpdateRepo:     newPgxPriceUpdateRepository(dbPool),
		BusinessPartnerRepo: newPgxBusinessPartnerRepository(dbPool),
		RevenueRepo:         newPgxRevenueRepository(dbPool),
		DistributionRepo:    newPgxDistributionRepository(dbPool),
		WithdrawalRepo:      newPgxWithdrawalRepository(dbPool),
		ExpenseRepo:         newPgxExpenseRepository(dbPool),
		OrderRepo:           newPgxOrderRepository(dbPool, txTimeout),
	}
}
