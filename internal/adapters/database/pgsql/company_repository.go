package pgsql

import (
	"context"
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool DBPool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository{Pool: pool}}
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, c domain.Company) error {
	query := `
		INSERT INTO companies (company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, c.CompanyID, c.Name, c.IsActive, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	return mapPgError(err, "failed to save company %q", c.Name)
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies WHERE company_id = $1;
	`
	var c domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&c.CompanyID, &c.Name, &c.IsActive, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "company %s", companyID)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.IsActive, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
