package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles reseller management.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

// registerPartnerRoutes registers partner routes. A partner user may read its own record.
func registerPartnerRoutes(rg *gin.RouterGroup, admin, idempotent gin.HandlerFunc, partnerService portssvc.PartnerSvcFacade) {
	h := &partnerHandler{partnerService: partnerService}

	partners := rg.Group("/partners")
	{
		partners.POST("", admin, h.createPartner)
		partners.GET("", admin, h.listPartners)
		partners.GET("/:id", h.getPartner)
		partners.PUT("/:id", admin, h.updatePartner)
		partners.DELETE("/:id", admin, h.deactivatePartner)
		partners.POST("/:id/wallet/credits", admin, idempotent, h.creditWallet)
	}
}

// createPartner godoc
// @Summary Register a partner
// @Description Creates a reseller and its available days in one transaction
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   partner body dto.CreatePartnerRequest true "Partner"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "E-mail already registered"
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create partner")
		return
	}
	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List partners
// @Tags partners
// @Produce  json
// @Param   activeOnly query bool false "Only active partners"
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPartnersResponse
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	var params dto.ListPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	partners, err := h.partnerService.ListPartners(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartnersResponse(partners))
}

// getPartner godoc
// @Summary Get a partner
// @Tags partners
// @Produce  json
// @Param   id path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	partnerID := c.Param("id")
	if !ownsPartner(c, partnerID) {
		return
	}
	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), partnerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// updatePartner godoc
// @Summary Update a partner
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   partner body dto.UpdatePartnerRequest true "Changes"
// @Success 200 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// deactivatePartner godoc
// @Summary Deactivate a partner
// @Tags partners
// @Param   id path string true "Partner ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [delete]
func (h *partnerHandler) deactivatePartner(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.partnerService.DeactivatePartner(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate partner")
		return
	}
	c.Status(http.StatusNoContent)
}

// creditWallet godoc
// @Summary Credit a partner wallet
// @Description Adds money to an active partner's wallet and records the credit
// @Tags partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Partner ID"
// @Param   Idempotency-Key header string false "Retry key"
// @Param   credit body dto.CreditWalletRequest true "Credit"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse "Invalid amount"
// @Failure 404 {object} ErrorResponse "Active partner not found"
// @Security BearerAuth
// @Router /partners/{id}/wallet/credits [post]
func (h *partnerHandler) creditWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreditWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	partner, err := h.partnerService.CreditWallet(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to credit wallet")
		return
	}
	logger.Info("Wallet credited", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}
