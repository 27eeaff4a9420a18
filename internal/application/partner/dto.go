package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"omitempty,max=500"`
	GSTIN       string `json:"gstin" binding:"omitempty,gstin"`
	CreditLimit string `json:"credit_limit" binding:"omitempty,money"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=200"`
	Phone   string  `json:"phone" binding:"omitempty,max=50"`
	Email   string  `json:"email" binding:"omitempty,email,max=200"`
	Address string  `json:"address" binding:"omitempty,max=500"`
	GSTIN   *string `json:"gstin" binding:"omitempty"`
	Notes   *string `json:"notes"`
}

// SetCreditLimitRequest represents a request to change a customer's credit limit
type SetCreditLimitRequest struct {
	CreditLimit string `json:"credit_limit" binding:"required,money"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	GSTIN       string    `json:"gstin,omitempty"`
	CreditLimit string    `json:"credit_limit"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its response shape
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		Phone:       customer.Phone,
		Email:       customer.Email,
		Address:     customer.Address,
		GSTIN:       customer.GSTIN,
		CreditLimit: customer.CreditLimit.StringFixed(),
		Status:      customer.Status.String(),
		Notes:       customer.Notes,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}
