package handlers

import (
	"log/slog"
	"net/http"

	"github.com/animal-wellness/aw_backend/internal/apperrors"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error onto a status code. Client errors echo the
// error text; server errors only return the generic message.
func respondError(c *gin.Context, err error, genericMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(genericMsg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: genericMsg})
		return
	}
	logger.Warn(genericMsg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// currentUser returns the caller's id or writes 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// partnerScope reports the partner a PARTNER user is bound to. Admins get ok=false
// and see everything.
func partnerScope(c *gin.Context) (partnerID string, scoped bool) {
	role, _ := middleware.GetRoleFromContext(c)
	if role != domain.RolePartner {
		return "", false
	}
	partnerID, _ = middleware.GetPartnerIDFromContext(c)
	return partnerID, true
}

// ownsPartner writes 403 when a partner user reaches for another partner's data.
func ownsPartner(c *gin.Context, partnerID string) bool {
	own, scoped := partnerScope(c)
	if !scoped || own == partnerID {
		return true
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Partner user denied access to another partner",
		slog.String("own_partner_id", own), slog.String("target_partner_id", partnerID))
	c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	return false
}
