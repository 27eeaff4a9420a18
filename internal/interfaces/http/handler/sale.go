package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	appbilling "github.com/shopdesk/backend/internal/application/billing"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// SaleHandler handles sale checkout and lookup endpoints
type SaleHandler struct {
	BaseHandler
	checkoutService *appbilling.CheckoutService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(checkoutService *appbilling.CheckoutService) *SaleHandler {
	return &SaleHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		billing.POST("/sales", h.Checkout)
		billing.GET("/sales", h.List)
		billing.GET("/sales/:id", h.GetByID)
		billing.GET("/invoices/:number", h.GetByInvoiceNumber)
	}
}

// Checkout finalizes a sale and issues its invoice number
// POST /api/v1/billing/sales
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req appbilling.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout request: "+err.Error())
		return
	}

	sale, err := h.checkoutService.Finalize(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID returns a sale by its ID
// GET /api/v1/billing/sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.checkoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Sale not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByInvoiceNumber returns a sale by its invoice number. Invoice numbers
// contain a slash ("25-26/AGT-007"), so the client URL-encodes the parameter.
// GET /api/v1/billing/invoices/:number
func (h *SaleHandler) GetByInvoiceNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	sale, err := h.checkoutService.GetByInvoiceNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Invoice not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns sales with pagination
// GET /api/v1/billing/sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter appbilling.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	result, err := h.checkoutService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
