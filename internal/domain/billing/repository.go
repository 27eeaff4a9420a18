package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// SaleRepository defines the persistence interface for sales
type SaleRepository interface {
	// Save persists a new sale atomically, including its line items and the
	// legacy invoice projection. Returns a SEQUENCE_CONFLICT domain error if
	// the invoice number is already taken.
	Save(ctx context.Context, sale *Sale) error

	// Update persists changes to an existing sale
	Update(ctx context.Context, sale *Sale) error

	// FindByID retrieves a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByInvoiceNumber retrieves a sale by its invoice number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Sale, error)

	// FindByCustomerID retrieves sales for a customer, newest first
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Sale, error)

	// FindWithOutstandingCredit retrieves finalized sales for a customer that
	// still carry unpaid credit, oldest first
	FindWithOutstandingCredit(ctx context.Context, customerID uuid.UUID) ([]*Sale, error)

	// List retrieves sales with pagination
	List(ctx context.Context, filter shared.Filter) ([]*Sale, error)

	// Count returns the total number of sales
	Count(ctx context.Context) (int64, error)
}

// SequenceRepository manages per-(financial year, prefix) invoice counters
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the given
	// financial year and store prefix, creating the counter row on first use.
	// On first use it bootstraps the counter from the highest invoice number
	// already issued for that year and prefix.
	Next(ctx context.Context, fy FinancialYear, prefix string) (int, error)
}

// SettingsRepository provides access to store-level settings
type SettingsRepository interface {
	// InvoicePrefix returns the configured invoice prefix, e.g. "AGT"
	InvoicePrefix(ctx context.Context) (string, error)
}
