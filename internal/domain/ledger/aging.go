package ledger

import (
	"time"

	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// AgingBuckets groups a customer's outstanding credit by the age of the
// originating invoice. Ages are measured in whole days from the invoice date
// to the reference date.
type AgingBuckets struct {
	Current      valueobject.Money // 0-30 days
	ThirtyPlus   valueobject.Money // 31-60 days
	SixtyPlus    valueobject.Money // 61-90 days
	NinetyPlus   valueobject.Money // over 90 days
	Total        valueobject.Money
	OldestInvoiceDays int
}

// NewAgingBuckets returns an all-zero bucket set
func NewAgingBuckets() AgingBuckets {
	z := valueobject.Zero()
	return AgingBuckets{Current: z, ThirtyPlus: z, SixtyPlus: z, NinetyPlus: z, Total: z}
}

// AgeInDays returns the whole days elapsed from invoiceDate to asOf.
// Negative ages (future-dated invoices) clamp to zero.
func AgeInDays(invoiceDate, asOf time.Time) int {
	days := int(asOf.Sub(invoiceDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Accumulate adds an outstanding amount to the bucket for the given invoice
// age and updates the total
func (b *AgingBuckets) Accumulate(outstanding valueobject.Money, invoiceDate, asOf time.Time) {
	if !outstanding.IsPositive() {
		return
	}

	days := AgeInDays(invoiceDate, asOf)
	switch {
	case days <= 30:
		b.Current = b.Current.Add(outstanding)
	case days <= 60:
		b.ThirtyPlus = b.ThirtyPlus.Add(outstanding)
	case days <= 90:
		b.SixtyPlus = b.SixtyPlus.Add(outstanding)
	default:
		b.NinetyPlus = b.NinetyPlus.Add(outstanding)
	}
	b.Total = b.Total.Add(outstanding)

	if days > b.OldestInvoiceDays {
		b.OldestInvoiceDays = days
	}
}

// IsOverdue returns true if any amount is older than 30 days
func (b AgingBuckets) IsOverdue() bool {
	return b.ThirtyPlus.IsPositive() || b.SixtyPlus.IsPositive() || b.NinetyPlus.IsPositive()
}
