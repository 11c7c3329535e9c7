package handlers

import (
	"log/slog"
	"net/http"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/dto"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type catalogHandler struct {
	companyService portssvc.CompanySvcFacade
	productService portssvc.ProductSvcFacade
}

// registerCatalogRoutes mounts companies and products. Reads are open to every
// authenticated user; writes need the admin role.
func registerCatalogRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc, companyService portssvc.CompanySvcFacade, productService portssvc.ProductSvcFacade) {
	h := &catalogHandler{companyService: companyService, productService: productService}

	companies := rg.Group("/companies")
	{
		companies.POST("", admin, h.createCompany)
		companies.GET("", h.listCompanies)
	}

	products := rg.Group("/products")
	{
		products.POST("", admin, h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/export", admin, h.exportPriceList)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", admin, h.updateProduct)
		products.DELETE("/:id", admin, h.deactivateProduct)
	}
}

// createCompany godoc
// @Summary Create a company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} domain.Company
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Company exists"
// @Security BearerAuth
// @Router /companies [post]
func (h *catalogHandler) createCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *catalogHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ListCompaniesResponse{Companies: companies})
}

// createProduct godoc
// @Summary Create a product with its variants
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /products [post]
func (h *catalogHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Param   companyId query string false "Company filter"
// @Param   partnerId query string false "Partner filter"
// @Param   activeOnly query bool false "Only active products"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProductsResponse
// @Security BearerAuth
// @Router /products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	products, err := h.productService.ListProducts(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: products})
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *catalogHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates product fields, updates listed variants and adds variants without an id
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Changes"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *catalogHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Tags products
// @Param   id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *catalogHandler) deactivateProduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate product")
		return
	}
	c.Status(http.StatusNoContent)
}

// exportPriceList godoc
// @Summary Download the price list
// @Description Exports every matching variant with its three prices as an Excel workbook
// @Tags products
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   companyId query string false "Company filter"
// @Param   activeOnly query bool false "Only active products"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /products/export [get]
func (h *catalogHandler) exportPriceList(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	data, err := h.productService.ExportPriceList(c.Request.Context(), domain.ProductFilter{
		CompanyID:  params.CompanyID,
		PartnerID:  params.PartnerID,
		ActiveOnly: params.ActiveOnly,
	})
	if err != nil {
		respondError(c, err, "Failed to export price list")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Price list exported", slog.Int("bytes", len(data)))
	c.Header("Content-Disposition", `attachment; filename="price-list.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
