package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type orderHandler struct {
	orderService   portssvc.OrderSvcFacade
	invoiceService portssvc.InvoiceSvc
}

// registerOrderRoutes mounts orders and invoices. Partner users only see orders placed for them.
func registerOrderRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc, orderService portssvc.OrderSvcFacade, invoiceService portssvc.InvoiceSvc) {
	h := &orderHandler{orderService: orderService, invoiceService: invoiceService}

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.GET("/:id/invoice", h.downloadInvoice)
		orders.PUT("/:id/status", admin, h.updateOrderStatus)
		orders.PUT("/:id/payment", admin, h.updatePaymentStatus)
	}
}

// canSeeOrder writes 403 unless the caller is an admin or the partner the order belongs to.
func canSeeOrder(c *gin.Context, order *domain.Order) bool {
	if order.PartnerID == nil {
		if _, scoped := partnerScope(c); scoped {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return false
		}
		return true
	}
	return ownsPartner(c, *order.PartnerID)
}

// createOrder godoc
// @Summary Place an order
// @Description Snapshots catalog prices, decrements stock and computes totals in one transaction
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if own, scoped := partnerScope(c); scoped {
		req.PartnerID = &own
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	logger.Info("Order placed", slog.String("order_id", order.OrderID), slog.String("order_number", order.OrderNumber))
	c.JSON(http.StatusCreated, order)
}

// listOrders godoc
// @Summary List orders
// @Description Newest first, paginated with an opaque nextToken
// @Tags orders
// @Produce  json
// @Param   partnerId query string false "Partner (admins only)"
// @Param   status query string false "Order status"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse "Invalid token"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	if own, scoped := partnerScope(c); scoped {
		params.PartnerID = own
	}
	orders, next, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ListOrdersResponse{Orders: orders, NextToken: next})
}

// getOrder godoc
// @Summary Get an order with its items
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}
	if !canSeeOrder(c, order) {
		return
	}
	c.JSON(http.StatusOK, order)
}

// downloadInvoice godoc
// @Summary Download the invoice PDF for an order
// @Tags orders
// @Produce  application/pdf
// @Param   id path string true "Order ID"
// @Param   branded query bool false "Render with company branding"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /orders/{id}/invoice [get]
func (h *orderHandler) downloadInvoice(c *gin.Context) {
	var params dto.InvoiceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	orderID := c.Param("id")
	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}
	if !canSeeOrder(c, order) {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filename, pdf, err := h.invoiceService.GenerateInvoice(c.Request.Context(), orderID, params.Branded, userID)
	if err != nil {
		respondError(c, err, "Failed to generate invoice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// updateOrderStatus godoc
// @Summary Move an order along its lifecycle
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /orders/{id}/status [put]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}

// updatePaymentStatus godoc
// @Summary Mark an order as paid
// @Description Records one revenue transaction per company on the order
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   payment body dto.UpdatePaymentStatusRequest true "Payment status"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Already paid or cancelled"
// @Security BearerAuth
// @Router /orders/{id}/payment [put]
func (h *orderHandler) updatePaymentStatus(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	order, err := h.orderService.MarkOrderPaid(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, order)
}
