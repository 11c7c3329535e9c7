package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/core/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/platform/config"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "test"}
}

func TestLogin_IssuesTokenWithRoleAndPartner(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAuthService(testConfig(), repo)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	partnerID := "partner-1"
	repo.On("FindUserByEmail", ctx, "vet@example.com").Return(&domain.User{
		UserID: "u-1", Email: "vet@example.com", PasswordHash: hash, Role: domain.RolePartner, PartnerID: &partnerID,
	}, nil).Once()

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "vet@example.com", Password: "correct horse"})

	require.NoError(t, err)
	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, string(domain.RolePartner), claims.Role)
	assert.Equal(t, partnerID, claims.PartnerID)
	assert.Equal(t, domain.RolePartner, resp.User.Role)
}

func TestLogin_WrongPasswordAndUnknownUserLookTheSame(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewAuthService(testConfig(), repo)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	repo.On("FindUserByEmail", ctx, "admin@example.com").Return(&domain.User{UserID: "u-2", PasswordHash: hash, Role: domain.RoleAdmin}, nil).Once()
	repo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, errWrong := svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "battery staple"})
	_, errUnknown := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, errWrong, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, errUnknown, apperrors.ErrUnauthorized)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestCreateUser_PartnerMustExist(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	partners := new(MockPartnerRepository)
	svc := services.NewUserService(users, partners)
	missing := "nope"
	partners.On("FindPartnerByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email: "p@example.com", Name: "P", Password: "password1", Role: domain.RolePartner, PartnerID: &missing,
	}, "admin")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	users.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	svc := services.NewUserService(users, new(MockPartnerRepository))
	users.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAdmin && u.PartnerID == nil && utils.CheckPasswordHash("password1", u.PasswordHash)
	})).Return(nil).Once()

	u, err := svc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@example.com", Name: "A", Password: "password1", Role: domain.RoleAdmin}, "admin")

	require.NoError(t, err)
	assert.NotEqual(t, "password1", u.PasswordHash)
	users.AssertExpectations(t)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when missing", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindUserByEmail", ctx, "root@example.com").Return(nil, apperrors.ErrNotFound).Once()
		users.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

		created, err := services.EnsureAdmin(ctx, users, "root@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.True(t, created)
		users.AssertExpectations(t)
	})

	t.Run("skips when present", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindUserByEmail", ctx, "root@example.com").Return(&domain.User{UserID: "u-1"}, nil).Once()

		created, err := services.EnsureAdmin(ctx, users, "root@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.False(t, created)
		users.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		created, err := services.EnsureAdmin(ctx, new(MockUserRepository), "", "")
		require.NoError(t, err)
		assert.False(t, created)
	})
}
