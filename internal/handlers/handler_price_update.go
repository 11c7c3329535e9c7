package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type priceUpdateHandler struct {
	priceUpdateService portssvc.PriceUpdateSvcFacade
}

// registerPriceUpdateRoutes mounts the bulk price engine. Apply and revert accept an
// Idempotency-Key header.
func registerPriceUpdateRoutes(rg *gin.RouterGroup, idempotent gin.HandlerFunc, priceUpdateService portssvc.PriceUpdateSvcFacade) {
	h := &priceUpdateHandler{priceUpdateService: priceUpdateService}

	updates := rg.Group("/price-updates")
	{
		updates.GET("/preview", h.previewPriceUpdate)
		updates.POST("", idempotent, h.applyPriceUpdate)
		updates.GET("", h.listPriceUpdates)
		updates.GET("/:id", h.getPriceUpdate)
		updates.POST("/:id/revert", idempotent, h.revertPriceUpdate)
	}
}

// previewPriceUpdate godoc
// @Summary Preview a bulk price update
// @Description Resolves the scope and returns old and new price per variant without writing anything
// @Tags price-updates
// @Produce  json
// @Param   companyIds query []string false "Company scope" collectionFormat(multi)
// @Param   partnerIds query []string false "Partner scope" collectionFormat(multi)
// @Param   productIds query []string false "Product scope" collectionFormat(multi)
// @Param   priceType query string true "companyPrice, dealerPrice or customerPrice"
// @Param   updateType query string true "exact, percentage, addition or subtraction"
// @Param   value query string true "Rule operand"
// @Success 200 {object} dto.PriceUpdatePreviewResponse
// @Failure 400 {object} ErrorResponse "Invalid rule or scope"
// @Security BearerAuth
// @Router /price-updates/preview [get]
func (h *priceUpdateHandler) previewPriceUpdate(c *gin.Context) {
	var params dto.PriceUpdatePreviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	resp, err := h.priceUpdateService.PreviewPriceUpdate(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to preview price update")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// applyPriceUpdate godoc
// @Summary Apply a bulk price update
// @Description Applies the rule to every variant in scope in one transaction and records an audit batch
// @Tags price-updates
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Retry key"
// @Param   update body dto.PriceUpdateRequest true "Rule and scope"
// @Success 201 {object} domain.PriceUpdateBatch
// @Failure 400 {object} ErrorResponse "Invalid rule or scope"
// @Failure 404 {object} ErrorResponse "Scope matched no variants"
// @Failure 409 {object} ErrorResponse "Duplicate Idempotency-Key"
// @Security BearerAuth
// @Router /price-updates [post]
func (h *priceUpdateHandler) applyPriceUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	batch, err := h.priceUpdateService.ApplyPriceUpdate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to apply price update")
		return
	}
	logger.Info("Price update applied", slog.String("batch_id", batch.BatchID), slog.Int("variants", batch.VariantCount))
	c.JSON(http.StatusCreated, batch)
}

// listPriceUpdates godoc
// @Summary List price update batches
// @Tags price-updates
// @Produce  json
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPriceUpdatesResponse
// @Security BearerAuth
// @Router /price-updates [get]
func (h *priceUpdateHandler) listPriceUpdates(c *gin.Context) {
	var params dto.ListPriceUpdatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	batches, err := h.priceUpdateService.ListPriceUpdates(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list price updates")
		return
	}
	c.JSON(http.StatusOK, dto.ListPriceUpdatesResponse{Batches: batches})
}

// getPriceUpdate godoc
// @Summary Get a price update batch with its items
// @Tags price-updates
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} domain.PriceUpdateBatch
// @Failure 404 {object} ErrorResponse "Batch not found"
// @Security BearerAuth
// @Router /price-updates/{id} [get]
func (h *priceUpdateHandler) getPriceUpdate(c *gin.Context) {
	batch, err := h.priceUpdateService.GetPriceUpdate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve price update")
		return
	}
	c.JSON(http.StatusOK, batch)
}

// revertPriceUpdate godoc
// @Summary Revert a price update batch
// @Description Restores the recorded old prices; a batch can be reverted once
// @Tags price-updates
// @Produce  json
// @Param   id path string true "Batch ID"
// @Success 200 {object} domain.PriceUpdateBatch
// @Failure 404 {object} ErrorResponse "Batch not found"
// @Failure 409 {object} ErrorResponse "Already reverted"
// @Security BearerAuth
// @Router /price-updates/{id}/revert [post]
func (h *priceUpdateHandler) revertPriceUpdate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	batch, err := h.priceUpdateService.RevertPriceUpdate(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to revert price update")
		return
	}
	c.JSON(http.StatusOK, batch)
}
