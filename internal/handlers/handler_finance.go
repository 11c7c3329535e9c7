package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financeHandler covers business partners, revenue and profit distributions. Every route is admin only.
type financeHandler struct {
	businessPartnerService portssvc.BusinessPartnerSvcFacade
	revenueService         portssvc.RevenueSvcFacade
	distributionService    portssvc.DistributionSvcFacade
}

func registerFinanceRoutes(rg *gin.RouterGroup, idempotent gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := &financeHandler{
		businessPartnerService: services.BusinessPartner,
		revenueService:         services.Revenue,
		distributionService:    services.Distribution,
	}

	bp := rg.Group("/business-partners")
	{
		bp.POST("", h.createBusinessPartner)
		bp.GET("", h.listBusinessPartners)
		bp.GET("/:id", h.getBusinessPartner)
		bp.PUT("/:id", h.updateBusinessPartner)
		bp.DELETE("/:id", h.deactivateBusinessPartner)
	}

	revenue := rg.Group("/revenue")
	{
		revenue.POST("", h.recordRevenue)
		revenue.GET("", h.listRevenue)
	}

	dist := rg.Group("/distributions")
	{
		dist.POST("/calculate", h.calculateDistributions)
		dist.POST("", idempotent, h.createDistributions)
		dist.GET("", h.listDistributions)
		dist.GET("/:id", h.getDistribution)
		dist.PUT("/:id/status", h.updateDistributionStatus)
	}
}

// createBusinessPartner godoc
// @Summary Register a business partner
// @Tags business-partners
// @Accept  json
// @Produce  json
// @Param   businessPartner body dto.CreateBusinessPartnerRequest true "Business partner"
// @Success 201 {object} domain.BusinessPartner
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /business-partners [post]
func (h *financeHandler) createBusinessPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBusinessPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bp, err := h.businessPartnerService.CreateBusinessPartner(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create business partner")
		return
	}
	logger.Info("Business partner created", slog.String("business_partner_id", bp.BusinessPartnerID))
	c.JSON(http.StatusCreated, bp)
}

// listBusinessPartners godoc
// @Summary List business partners
// @Tags business-partners
// @Produce  json
// @Param   activeOnly query bool false "Only active business partners"
// @Success 200 {object} dto.ListBusinessPartnersResponse
// @Security BearerAuth
// @Router /business-partners [get]
func (h *financeHandler) listBusinessPartners(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("activeOnly"))
	bps, err := h.businessPartnerService.ListBusinessPartners(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "Failed to list business partners")
		return
	}
	c.JSON(http.StatusOK, dto.ListBusinessPartnersResponse{BusinessPartners: bps})
}

// getBusinessPartner godoc
// @Summary Get a business partner
// @Tags business-partners
// @Produce  json
// @Param   id path string true "Business partner ID"
// @Success 200 {object} domain.BusinessPartner
// @Failure 404 {object} ErrorResponse "Business partner not found"
// @Security BearerAuth
// @Router /business-partners/{id} [get]
func (h *financeHandler) getBusinessPartner(c *gin.Context) {
	bp, err := h.businessPartnerService.GetBusinessPartnerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve business partner")
		return
	}
	c.JSON(http.StatusOK, bp)
}

// updateBusinessPartner godoc
// @Summary Update a business partner
// @Tags business-partners
// @Accept  json
// @Produce  json
// @Param   id path string true "Business partner ID"
// @Param   businessPartner body dto.UpdateBusinessPartnerRequest true "Changes"
// @Success 200 {object} domain.BusinessPartner
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Business partner not found"
// @Security BearerAuth
// @Router /business-partners/{id} [put]
func (h *financeHandler) updateBusinessPartner(c *gin.Context) {
	var req dto.UpdateBusinessPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bp, err := h.businessPartnerService.UpdateBusinessPartner(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update business partner")
		return
	}
	c.JSON(http.StatusOK, bp)
}

// deactivateBusinessPartner godoc
// @Summary Deactivate a business partner
// @Tags business-partners
// @Param   id path string true "Business partner ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Business partner not found"
// @Security BearerAuth
// @Router /business-partners/{id} [delete]
func (h *financeHandler) deactivateBusinessPartner(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.businessPartnerService.DeactivateBusinessPartner(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate business partner")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordRevenue godoc
// @Summary Record a manual revenue entry
// @Tags revenue
// @Accept  json
// @Produce  json
// @Param   revenue body dto.CreateRevenueRequest true "Revenue"
// @Success 201 {object} domain.RevenueTransaction
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /revenue [post]
func (h *financeHandler) recordRevenue(c *gin.Context) {
	var req dto.CreateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tx, err := h.revenueService.RecordRevenue(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record revenue")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// listRevenue godoc
// @Summary List revenue transactions
// @Tags revenue
// @Produce  json
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   companyId query string false "Company"
// @Success 200 {object} dto.ListRevenueResponse
// @Security BearerAuth
// @Router /revenue [get]
func (h *financeHandler) listRevenue(c *gin.Context) {
	var params dto.ListRevenueParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	txs, err := h.revenueService.ListRevenue(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list revenue")
		return
	}
	c.JSON(http.StatusOK, dto.ListRevenueResponse{Transactions: txs})
}

// calculateDistributions godoc
// @Summary Preview profit distributions for a period
// @Description Computes each active business partner's share without persisting anything
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   period body dto.DistributionPeriodRequest true "Period"
// @Success 200 {object} dto.CalculateDistributionsResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Security BearerAuth
// @Router /distributions/calculate [post]
func (h *financeHandler) calculateDistributions(c *gin.Context) {
	var req dto.DistributionPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	calcs, err := h.distributionService.CalculateDistributions(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to calculate distributions")
		return
	}
	c.JSON(http.StatusOK, dto.ToCalculateDistributionsResponse(calcs))
}

// createDistributions godoc
// @Summary Create profit distributions for a period
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Retry key"
// @Param   period body dto.DistributionPeriodRequest true "Period"
// @Success 201 {object} dto.ListDistributionsResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Security BearerAuth
// @Router /distributions [post]
func (h *financeHandler) createDistributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DistributionPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dists, err := h.distributionService.CreateDistributions(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create distributions")
		return
	}
	logger.Info("Distributions created", slog.Int("count", len(dists)))
	c.JSON(http.StatusCreated, dto.ListDistributionsResponse{Distributions: dists})
}

// listDistributions godoc
// @Summary List distributions
// @Tags distributions
// @Produce  json
// @Param   businessPartnerId query string false "Business partner"
// @Param   status query string false "PENDING, COMPLETED or CANCELLED"
// @Success 200 {object} dto.ListDistributionsResponse
// @Security BearerAuth
// @Router /distributions [get]
func (h *financeHandler) listDistributions(c *gin.Context) {
	var params dto.ListDistributionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	dists, err := h.distributionService.ListDistributions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list distributions")
		return
	}
	c.JSON(http.StatusOK, dto.ListDistributionsResponse{Distributions: dists})
}

// getDistribution godoc
// @Summary Get a distribution
// @Tags distributions
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Success 200 {object} domain.Distribution
// @Failure 404 {object} ErrorResponse "Distribution not found"
// @Security BearerAuth
// @Router /distributions/{id} [get]
func (h *financeHandler) getDistribution(c *gin.Context) {
	dist, err := h.distributionService.GetDistributionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve distribution")
		return
	}
	c.JSON(http.StatusOK, dist)
}

// updateDistributionStatus godoc
// @Summary Complete or cancel a pending distribution
// @Description Completing a distribution records the payout as a partner distribution expense
// @Tags distributions
// @Accept  json
// @Produce  json
// @Param   id path string true "Distribution ID"
// @Param   status body dto.UpdateDistributionStatusRequest true "New status"
// @Success 200 {object} domain.Distribution
// @Failure 404 {object} ErrorResponse "Distribution not found"
// @Failure 409 {object} ErrorResponse "Distribution already processed"
// @Security BearerAuth
// @Router /distributions/{id}/status [put]
func (h *financeHandler) updateDistributionStatus(c *gin.Context) {
	var req dto.UpdateDistributionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	dist, err := h.distributionService.UpdateDistributionStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update distribution")
		return
	}
	c.JSON(http.StatusOK, dist)
}
