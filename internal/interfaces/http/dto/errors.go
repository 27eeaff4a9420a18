package dto

import (
	"net/http"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// domainCodeHTTPStatus maps billing and ledger domain error codes to HTTP
// status codes. Business rule violations map to 422; conflicts that a retry
// can resolve map to 409.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":          http.StatusNotFound,
	"CUSTOMER_NOT_FOUND": http.StatusNotFound,
	"CUSTOMER_EXISTS":    http.StatusConflict,
	"ALREADY_EXISTS":     http.StatusConflict,

	shared.CodeInvalidAmount: http.StatusBadRequest,
	"INVALID_TAX_RATE":       http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_DISCOUNT":       http.StatusBadRequest,
	"INVALID_CUSTOMER":       http.StatusBadRequest,
	"INVALID_CUSTOMER_NAME":  http.StatusBadRequest,
	"INVALID_CREDIT_LIMIT":   http.StatusBadRequest,
	"INVALID_ADDRESS":        http.StatusBadRequest,
	"INVALID_PHONE":          http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_GSTIN":          http.StatusBadRequest,
	"INVALID_ENTRY_TYPE":     http.StatusBadRequest,
	"INVALID_INVOICE_NUMBER": http.StatusBadRequest,
	"INVALID_ITEM_NAME":      http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,

	shared.CodePaymentMismatch:     http.StatusUnprocessableEntity,
	shared.CodeCreditLimitExceeded: http.StatusUnprocessableEntity,
	shared.CodeOverpaymentRejected: http.StatusUnprocessableEntity,
	"INVALID_STATE":                http.StatusUnprocessableEntity,
	"NO_ITEMS":                     http.StatusUnprocessableEntity,

	shared.CodeSequenceConflict:   http.StatusConflict,
	"CONCURRENT_MODIFICATION":     http.StatusConflict,
	"CONCURRENCY_CONFLICT":        http.StatusConflict,
	shared.CodeSequenceExhausted:  http.StatusServiceUnavailable,
	shared.CodePersistenceFailure: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeConflict:   http.StatusConflict,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeUnknown:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 422: an unmapped domain error is a business rule
// violation, not a server fault.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
