package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	portsrepo "github.com/animal-wellness/aw_backend/internal/core/ports/repositories"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/config"
	"github.com/animal-wellness/aw_backend/internal/utils"
)

// authService exchanges e-mail/password credentials for a signed JWT.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.AuthSvc {
	return &authService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login attempt for unknown e-mail")
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	partnerID := ""
	if user.PartnerID != nil {
		partnerID = *user.PartnerID
	}
	expiresAt := s.now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), partnerID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
