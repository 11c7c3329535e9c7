package dto

import "github.com/animal-wellness/aw_backend/internal/core/domain"

type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type ListCompaniesResponse struct {
	Companies []domain.Company `json:"companies"`
}
