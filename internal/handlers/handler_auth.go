package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
	userService portssvc.UserSvcFacade
}

// registerAuthRoutes mounts the public login route behind a per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, loginLimiter *limiter.Limiter, authService portssvc.AuthSvc) {
	h := &authHandler{authService: authService}

	auth := r.Group("/api/v1/auth")
	if loginLimiter != nil {
		auth.Use(middleware.RateLimit(loginLimiter))
	}
	auth.POST("/login", h.login)
}

func registerMeRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &authHandler{userService: userService}
	rg.GET("/me", h.me)
}

// login godoc
// @Summary Log in
// @Description Exchanges e-mail and password for a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "login request", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	logger.Info("Login succeeded", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

// me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
