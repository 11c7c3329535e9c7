package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// withdrawalHandler serves wallet payouts. Partners request and read their own;
// admins decide.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func registerWithdrawalRoutes(rg *gin.RouterGroup, admin, idempotent gin.HandlerFunc, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", idempotent, h.createWithdrawal)
		withdrawals.GET("", h.listWithdrawals)
		withdrawals.GET("/:id", h.getWithdrawal)
		withdrawals.PUT("/:id/approve", admin, idempotent, h.approveWithdrawal)
		withdrawals.PUT("/:id/reject", admin, h.rejectWithdrawal)
	}
}

// createWithdrawal godoc
// @Summary Request a wallet withdrawal
// @Description Partner users always withdraw from their own wallet; admins must name the partner
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Retry key"
// @Param   withdrawal body dto.CreateWithdrawalRequest true "Withdrawal"
// @Success 201 {object} domain.WithdrawalRequest
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 409 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	partnerID, scoped := partnerScope(c)
	if !scoped {
		partnerID = req.PartnerID
	}
	if partnerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "partnerId is required"})
		return
	}

	w, err := h.withdrawalService.CreateWithdrawal(c.Request.Context(), partnerID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create withdrawal request")
		return
	}
	logger.Info("Withdrawal requested", slog.String("withdrawal_id", w.WithdrawalID), slog.String("partner_id", partnerID))
	c.JSON(http.StatusCreated, w)
}

// listWithdrawals godoc
// @Summary List withdrawal requests
// @Tags withdrawals
// @Produce  json
// @Param   status query string false "pending, approved or rejected"
// @Param   partnerId query string false "Partner (admins only)"
// @Success 200 {object} dto.ListWithdrawalsResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	var params dto.ListWithdrawalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	if own, scoped := partnerScope(c); scoped {
		params.PartnerID = own
	}
	ws, err := h.withdrawalService.ListWithdrawals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list withdrawal requests")
		return
	}
	c.JSON(http.StatusOK, dto.ListWithdrawalsResponse{Withdrawals: ws})
}

// getWithdrawal godoc
// @Summary Get a withdrawal request
// @Tags withdrawals
// @Produce  json
// @Param   id path string true "Withdrawal ID"
// @Success 200 {object} domain.WithdrawalRequest
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Withdrawal not found"
// @Security BearerAuth
// @Router /withdrawals/{id} [get]
func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	w, err := h.withdrawalService.GetWithdrawalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve withdrawal request")
		return
	}
	if !ownsPartner(c, w.PartnerID) {
		return
	}
	c.JSON(http.StatusOK, w)
}

// approveWithdrawal godoc
// @Summary Approve a pending withdrawal
// @Description Debits the wallet and records a partner distribution expense atomically
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   id path string true "Withdrawal ID"
// @Param   decision body dto.ApproveWithdrawalRequest false "Admin note"
// @Success 200 {object} domain.WithdrawalRequest
// @Failure 404 {object} ErrorResponse "Withdrawal not found"
// @Failure 409 {object} ErrorResponse "Already processed or insufficient balance"
// @Security BearerAuth
// @Router /withdrawals/{id}/approve [put]
func (h *withdrawalHandler) approveWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApproveWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "request format", err)
			return
		}
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	w, err := h.withdrawalService.ApproveWithdrawal(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to approve withdrawal request")
		return
	}
	logger.Info("Withdrawal approved", slog.String("withdrawal_id", w.WithdrawalID))
	c.JSON(http.StatusOK, w)
}

// rejectWithdrawal godoc
// @Summary Reject a pending withdrawal
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   id path string true "Withdrawal ID"
// @Param   decision body dto.RejectWithdrawalRequest true "Reason"
// @Success 200 {object} domain.WithdrawalRequest
// @Failure 400 {object} ErrorResponse "Missing reason"
// @Failure 404 {object} ErrorResponse "Withdrawal not found"
// @Failure 409 {object} ErrorResponse "Already processed"
// @Security BearerAuth
// @Router /withdrawals/{id}/reject [put]
func (h *withdrawalHandler) rejectWithdrawal(c *gin.Context) {
	var req dto.RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	w, err := h.withdrawalService.RejectWithdrawal(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to reject withdrawal request")
		return
	}
	c.JSON(http.StatusOK, w)
}
