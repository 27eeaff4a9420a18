package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// LedgerRepository defines the persistence interface for the append-only
// credit ledger. There is deliberately no Update or Delete.
type LedgerRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, entry *Entry) error

	// FindByCustomerID retrieves a customer's entries, newest first
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Entry, error)

	// FindByCustomerIDAndDateRange retrieves a customer's entries within a
	// date range, oldest first, for statement rendering
	FindByCustomerIDAndDateRange(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]*Entry, error)

	// OutstandingBalance computes the customer's current outstanding credit
	// as the sum of signed entry amounts
	OutstandingBalance(ctx context.Context, customerID uuid.UUID) (valueobject.Money, error)

	// BalanceAsOf computes the outstanding credit from entries dated
	// strictly before the given time, for statement opening balances
	BalanceAsOf(ctx context.Context, customerID uuid.UUID, asOf time.Time) (valueobject.Money, error)

	// CountByCustomerID returns the number of entries for a customer
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
}
