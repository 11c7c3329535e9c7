package dto

import (
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
)

// LoginRequest carries e-mail/password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest is used by admins to provision back-office or partner accounts.
type CreateUserRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Name      string          `json:"name" binding:"required"`
	Password  string          `json:"password" binding:"required,min=8"`
	Role      domain.UserRole `json:"role" binding:"required,oneof=ADMIN PARTNER"`
	PartnerID *string         `json:"partnerID" binding:"required_if=Role PARTNER"`
}

type UserResponse struct {
	UserID    string          `json:"userID"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	PartnerID *string         `json:"partnerID,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		PartnerID: user.PartnerID,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
