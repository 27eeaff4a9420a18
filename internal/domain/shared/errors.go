package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Billing error codes. Handlers map these to HTTP statuses; the codes themselves
// are the stable contract callers branch on.
const (
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodePaymentMismatch     = "PAYMENT_MISMATCH"
	CodeCreditLimitExceeded = "CREDIT_LIMIT_EXCEEDED"
	CodeOverpaymentRejected = "OVERPAYMENT_REJECTED"
	CodeSequenceConflict    = "SEQUENCE_CONFLICT"
	CodeSequenceExhausted   = "SEQUENCE_EXHAUSTED"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
)

// IsCode returns true if err is (or wraps) a DomainError with the given code
func IsCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
