package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	apppartner "github.com/shopdesk/backend/internal/application/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// CustomerHandler handles customer CRUD endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *apppartner.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *apppartner.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/partner/customers")
	{
		customers.POST("", h.Create)
		customers.POST("/import", h.Import)
		customers.GET("", h.List)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.PUT("/:id/credit-limit", h.SetCreditLimit)
		customers.DELETE("/:id", h.Deactivate)
	}
}

// Create registers a new customer
// POST /api/v1/partner/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req apppartner.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid customer request: "+err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// maxImportFileSize caps customer CSV uploads at 5 MiB.
const maxImportFileSize = 5 << 20

// Import bulk-creates customers from an uploaded CSV file. The file goes in
// the "file" multipart form field with headers name, phone, email, address,
// gstin, credit_limit, notes.
// POST /api/v1/partner/customers/import
func (h *CustomerHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing CSV upload in 'file' form field")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.BadRequest(c, "Import file exceeds the 5 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.customerService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a customer by ID
// GET /api/v1/partner/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Customer not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Update updates a customer's details
// PUT /api/v1/partner/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req apppartner.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid customer request: "+err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// SetCreditLimit changes a customer's credit limit
// PUT /api/v1/partner/customers/:id/credit-limit
func (h *CustomerHandler) SetCreditLimit(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req apppartner.SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid credit limit request: "+err.Error())
		return
	}

	customer, err := h.customerService.SetCreditLimit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List returns customers, optionally filtered by name search or active status
// GET /api/v1/partner/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter apppartner.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	result, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Deactivate marks a customer inactive. Sales history and ledger entries are
// kept; the customer just stops appearing in active listings.
// DELETE /api/v1/partner/customers/:id
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Customer not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
