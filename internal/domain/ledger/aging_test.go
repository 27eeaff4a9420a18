package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeInDays(t *testing.T) {
	asOf := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.Local)

	t.Run("whole days elapsed", func(t *testing.T) {
		invoice := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.Local)
		assert.Equal(t, 30, AgeInDays(invoice, asOf))
	})

	t.Run("same day is zero", func(t *testing.T) {
		assert.Equal(t, 0, AgeInDays(asOf, asOf))
	})

	t.Run("future dates clamp to zero", func(t *testing.T) {
		future := asOf.Add(48 * time.Hour)
		assert.Equal(t, 0, AgeInDays(future, asOf))
	})
}

func TestAgingBuckets(t *testing.T) {
	asOf := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.Local)
	daysAgo := func(n int) time.Time { return asOf.AddDate(0, 0, -n) }

	t.Run("routes amounts to the correct buckets", func(t *testing.T) {
		b := NewAgingBuckets()
		b.Accumulate(money(t, "100"), daysAgo(10), asOf)
		b.Accumulate(money(t, "200"), daysAgo(45), asOf)
		b.Accumulate(money(t, "300"), daysAgo(75), asOf)
		b.Accumulate(money(t, "400"), daysAgo(120), asOf)

		assert.Equal(t, "100.00", b.Current.StringFixed())
		assert.Equal(t, "200.00", b.ThirtyPlus.StringFixed())
		assert.Equal(t, "300.00", b.SixtyPlus.StringFixed())
		assert.Equal(t, "400.00", b.NinetyPlus.StringFixed())
		assert.Equal(t, "1000.00", b.Total.StringFixed())
		assert.Equal(t, 120, b.OldestInvoiceDays)
	})

	t.Run("boundary days fall in the lower bucket", func(t *testing.T) {
		b := NewAgingBuckets()
		b.Accumulate(money(t, "10"), daysAgo(30), asOf)
		b.Accumulate(money(t, "20"), daysAgo(31), asOf)
		b.Accumulate(money(t, "30"), daysAgo(60), asOf)
		b.Accumulate(money(t, "40"), daysAgo(61), asOf)
		b.Accumulate(money(t, "50"), daysAgo(90), asOf)
		b.Accumulate(money(t, "60"), daysAgo(91), asOf)

		assert.Equal(t, "10.00", b.Current.StringFixed())
		assert.Equal(t, "50.00", b.ThirtyPlus.StringFixed())
		assert.Equal(t, "90.00", b.SixtyPlus.StringFixed())
		assert.Equal(t, "60.00", b.NinetyPlus.StringFixed())
	})

	t.Run("ignores non-positive amounts", func(t *testing.T) {
		b := NewAgingBuckets()
		b.Accumulate(money(t, "0"), daysAgo(10), asOf)
		b.Accumulate(money(t, "-5"), daysAgo(10), asOf)

		assert.True(t, b.Total.IsZero())
	})

	t.Run("IsOverdue requires amounts past 30 days", func(t *testing.T) {
		b := NewAgingBuckets()
		b.Accumulate(money(t, "100"), daysAgo(10), asOf)
		assert.False(t, b.IsOverdue())

		b.Accumulate(money(t, "1"), daysAgo(40), asOf)
		assert.True(t, b.IsOverdue())
	})
}
