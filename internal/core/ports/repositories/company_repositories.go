package repositories

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// CompanyRepositoryFacade covers catalog companies.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}
