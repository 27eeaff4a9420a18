package handler

import (
	"github.com/gin-gonic/gin"
	appledger "github.com/shopdesk/backend/internal/application/ledger"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
)

// LedgerHandler handles customer credit ledger endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *appledger.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *appledger.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger/customers/:id")
	{
		ledger.POST("/payments", h.RecordPayment)
		ledger.GET("/balance", h.Balance)
		ledger.GET("/aging", h.Aging)
		ledger.GET("/statement", h.Statement)
		ledger.GET("/history", h.History)
	}
}

// RecordPayment records a payment against a customer's outstanding credit
// POST /api/v1/ledger/customers/:id/payments
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appledger.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment request: "+err.Error())
		return
	}

	result, err := h.ledgerService.RecordPayment(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Balance returns a customer's outstanding credit and remaining headroom
// GET /api/v1/ledger/customers/:id/balance
func (h *LedgerHandler) Balance(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	balance, err := h.ledgerService.Balance(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// Aging returns a customer's outstanding credit bucketed by invoice age
// GET /api/v1/ledger/customers/:id/aging
func (h *LedgerHandler) Aging(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	aging, err := h.ledgerService.Aging(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, aging)
}

// Statement returns a customer's ledger statement for a date range
// GET /api/v1/ledger/customers/:id/statement
func (h *LedgerHandler) Statement(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req appledger.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid statement parameters: "+err.Error())
		return
	}

	statement, err := h.ledgerService.Statement(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statement)
}

// History returns a customer's ledger entries, newest first
// GET /api/v1/ledger/customers/:id/history
func (h *LedgerHandler) History(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	list.Normalize()

	filter := shared.Filter{Page: list.Page, PageSize: list.PageSize}
	result, err := h.ledgerService.History(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
