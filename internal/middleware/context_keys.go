package middleware

import (
	"context"
	"log/slog"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
	partnerIDKey = contextKey("partnerID")
)

// GetLoggerFromCtx returns the request-scoped logger, or slog.Default when the request
// did not pass through StructuredLoggingMiddleware.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext returns the role carried by the caller's token.
func GetRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.UserRole)
	return role, ok
}

// GetPartnerIDFromContext returns the partner a PARTNER user acts for.
func GetPartnerIDFromContext(c *gin.Context) (string, bool) {
	partnerID, ok := c.Request.Context().Value(partnerIDKey).(string)
	if !ok || partnerID == "" {
		return "", false
	}
	return partnerID, true
}
