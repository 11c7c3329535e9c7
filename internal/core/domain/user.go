package domain

import "time"

// UserRole controls which API surface a user may reach.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RolePartner UserRole = "PARTNER"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	// PartnerID links a PARTNER user to the reseller they act for.
	PartnerID *string `json:"partnerID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the user has full back-office access.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
