package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestEntryType(t *testing.T) {
	t.Run("IsValid returns true for valid types", func(t *testing.T) {
		assert.True(t, EntryTypeCreditSale.IsValid())
		assert.True(t, EntryTypeCreditPayment.IsValid())
	})

	t.Run("IsValid returns false for invalid type", func(t *testing.T) {
		assert.False(t, EntryType("REFUND").IsValid())
	})

	t.Run("IsIncrease distinguishes direction", func(t *testing.T) {
		assert.True(t, EntryTypeCreditSale.IsIncrease())
		assert.False(t, EntryTypeCreditPayment.IsIncrease())
	})
}

func TestNewCreditSaleEntry(t *testing.T) {
	t.Run("increases the running balance", func(t *testing.T) {
		saleID := uuid.New()
		entry, err := NewCreditSaleEntry(uuid.New(), money(t, "500"), money(t, "200"), "25-26/AGT-007", saleID)
		require.NoError(t, err)

		assert.Equal(t, EntryTypeCreditSale, entry.EntryType)
		assert.Equal(t, "200.00", entry.BalanceBefore.StringFixed())
		assert.Equal(t, "700.00", entry.BalanceAfter.StringFixed())
		assert.Equal(t, "25-26/AGT-007", entry.InvoiceNumber)
		require.NotNil(t, entry.SaleID)
		assert.Equal(t, saleID, *entry.SaleID)
		assert.Equal(t, "500.00", entry.SignedAmount().StringFixed())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewCreditSaleEntry(uuid.New(), valueobject.Zero(), valueobject.Zero(), "25-26/AGT-001", uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeInvalidAmount))
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewCreditSaleEntry(uuid.Nil, money(t, "100"), valueobject.Zero(), "25-26/AGT-001", uuid.New())
		assert.True(t, shared.IsCode(err, "INVALID_CUSTOMER"))
	})
}

func TestNewCreditPaymentEntry(t *testing.T) {
	t.Run("decreases the running balance", func(t *testing.T) {
		entry, err := NewCreditPaymentEntry(uuid.New(), money(t, "300"), money(t, "700"), "25-26/AGT-007", "cash received")
		require.NoError(t, err)

		assert.Equal(t, EntryTypeCreditPayment, entry.EntryType)
		assert.Equal(t, "700.00", entry.BalanceBefore.StringFixed())
		assert.Equal(t, "400.00", entry.BalanceAfter.StringFixed())
		assert.Equal(t, "cash received", entry.Remark)
		assert.Equal(t, "-300.00", entry.SignedAmount().StringFixed())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewCreditPaymentEntry(uuid.New(), money(t, "-50"), money(t, "100"), "25-26/AGT-007", "")
		assert.True(t, shared.IsCode(err, shared.CodeInvalidAmount))
	})
}
