package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	partnerRepo portsrepo.PartnerReader
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, partnerRepo portsrepo.PartnerReader) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, partnerRepo: partnerRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	var partnerID *string
	if req.Role == domain.RolePartner {
		if req.PartnerID == nil || *req.PartnerID == "" {
			return nil, fmt.Errorf("%w: partner users need a partnerID", apperrors.ErrValidation)
		}
		if _, err := s.partnerRepo.FindPartnerByID(ctx, *req.PartnerID); err != nil {
			s.LogError(ctx, err, "Partner for new user not found", slog.String("partner_id", *req.PartnerID))
			return nil, err
		}
		partnerID = req.PartnerID
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		PartnerID:    partnerID,
		AuditFields:  newAudit(creatorUserID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// EnsureAdmin creates the first admin when no user with that e-mail exists yet.
func EnsureAdmin(ctx context.Context, userRepo portsrepo.UserRepositoryFacade, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	_, err := userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	svc := &userService{userRepo: userRepo}
	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     domain.RoleAdmin,
	}, "system")
	if err != nil {
		return false, err
	}
	return true, nil
}
