package handlers

import (
	"net/http"

	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SaleHandler handles HTTP requests for the sales ledger. All routes are Admin only.
type SaleHandler struct {
	sales service.SaleServiceInterface
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(sales service.SaleServiceInterface) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// CreateSale handles POST /sales
// @Summary Record a sale
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body service.CreateSaleRequest true "Sale data"
// @Success 201 {object} service.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), auth.GetMembership(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales handles GET /sales
// @Summary List sales of the caller's company
// @Tags sales
// @Produce json
// @Success 200 {array} service.SaleResponse
// @Failure 403 {object} ErrorResponse "Admin only"
// @Security BearerAuth
// @Router /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.List(c.Request.Context(), auth.GetMembership(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale handles GET /sales/:id
// @Summary Get a sale
// @Tags sales
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Success 200 {object} service.SaleResponse
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.sales.GetByID(c.Request.Context(), auth.GetMembership(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// UpdateSale handles PUT /sales/:id
// @Summary Update a sale
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Param sale body service.UpdateSaleRequest true "Fields to change"
// @Success 200 {object} service.SaleResponse
// @Failure 400 {object} ErrorResponse "Cancelled sales cannot be changed"
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "sale")
	if !ok {
		return
	}

	var req service.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sale, err := h.sales.Update(c.Request.Context(), auth.GetMembership(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// UpdateSaleStatus handles PATCH /sales/:id/status
// @Summary Change sale status
// @Description pending and completed may move freely; cancelled is final.
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "Sale ID (UUID)"
// @Param status body service.UpdateSaleStatusRequest true "New status"
// @Success 200 {object} service.SaleResponse
// @Failure 400 {object} ErrorResponse "Unknown status or invalid transition"
// @Security BearerAuth
// @Router /sales/{id}/status [patch]
func (h *SaleHandler) UpdateSaleStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "sale")
	if !ok {
		return
	}

	var req service.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sale, err := h.sales.UpdateStatus(c.Request.Context(), auth.GetMembership(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
