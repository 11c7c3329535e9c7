package services

import (
	"context"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/dto"
)

// AuthSvc exchanges credentials for a signed access token.
type AuthSvc interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}
