package billing

import (
	"testing"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestComputeExclusive(t *testing.T) {
	t.Run("adds tax on top of the amount", func(t *testing.T) {
		breakup, err := ComputeExclusive(money(t, "100"), decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.Equal(t, "100.00", breakup.Taxable.StringFixed())
		assert.Equal(t, "5.00", breakup.Tax.StringFixed())
		assert.Equal(t, "2.50", breakup.CGST.StringFixed())
		assert.Equal(t, "2.50", breakup.SGST.StringFixed())
		assert.Equal(t, "105.00", breakup.Total.StringFixed())
	})

	t.Run("standard 18 percent rate", func(t *testing.T) {
		breakup, err := ComputeExclusive(money(t, "1000"), decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.Equal(t, "1000.00", breakup.Taxable.StringFixed())
		assert.Equal(t, "180.00", breakup.Tax.StringFixed())
		assert.Equal(t, "90.00", breakup.CGST.StringFixed())
		assert.Equal(t, "90.00", breakup.SGST.StringFixed())
		assert.Equal(t, "1180.00", breakup.Total.StringFixed())
	})

	t.Run("odd paise tax splits without losing a paisa", func(t *testing.T) {
		// 0.33 tax: naive halving twice would give 0.17 + 0.17 = 0.34
		breakup, err := ComputeExclusive(money(t, "6.60"), decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.Equal(t, "0.33", breakup.Tax.StringFixed())
		assert.Equal(t, "0.16", breakup.CGST.StringFixed())
		assert.Equal(t, "0.17", breakup.SGST.StringFixed())
		assert.True(t, breakup.CGST.Add(breakup.SGST).Equals(breakup.Tax))
	})

	t.Run("zero amount yields zero breakup", func(t *testing.T) {
		breakup, err := ComputeExclusive(valueobject.Zero(), decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.True(t, breakup.Tax.IsZero())
		assert.True(t, breakup.Total.IsZero())
	})

	t.Run("negative amount yields zero breakup", func(t *testing.T) {
		breakup, err := ComputeExclusive(money(t, "-50"), decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.True(t, breakup.Total.IsZero())
	})

	t.Run("zero rate yields zero tax", func(t *testing.T) {
		breakup, err := ComputeExclusive(money(t, "250"), decimal.Zero)
		require.NoError(t, err)

		assert.True(t, breakup.Tax.IsZero())
		assert.Equal(t, "250.00", breakup.Total.StringFixed())
	})

	t.Run("rejects rate above 100", func(t *testing.T) {
		_, err := ComputeExclusive(money(t, "100"), decimal.NewFromInt(101))
		assert.True(t, shared.IsCode(err, "INVALID_TAX_RATE"))
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := ComputeExclusive(money(t, "100"), decimal.NewFromInt(-1))
		assert.True(t, shared.IsCode(err, "INVALID_TAX_RATE"))
	})
}

func TestComputeInclusive(t *testing.T) {
	t.Run("extracts tax from the amount", func(t *testing.T) {
		breakup, err := ComputeInclusive(money(t, "1180"), decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.Equal(t, "1000.00", breakup.Taxable.StringFixed())
		assert.Equal(t, "180.00", breakup.Tax.StringFixed())
		assert.Equal(t, "90.00", breakup.CGST.StringFixed())
		assert.Equal(t, "90.00", breakup.SGST.StringFixed())
		assert.Equal(t, "1180.00", breakup.Total.StringFixed())
	})

	t.Run("total reconstructs exactly from taxable plus tax", func(t *testing.T) {
		for _, amount := range []string{"99.99", "101.01", "1234.56", "0.01"} {
			breakup, err := ComputeInclusive(money(t, amount), decimal.NewFromInt(18))
			require.NoError(t, err)

			assert.True(t, breakup.Taxable.Add(breakup.Tax).Equals(breakup.Total),
				"amount %s: taxable %s + tax %s != total %s",
				amount, breakup.Taxable.StringFixed(), breakup.Tax.StringFixed(), breakup.Total.StringFixed())
		}
	})

	t.Run("CGST and SGST always sum to tax", func(t *testing.T) {
		for _, amount := range []string{"117.99", "36.05", "5.01", "999.97"} {
			breakup, err := ComputeInclusive(money(t, amount), decimal.NewFromInt(12))
			require.NoError(t, err)

			assert.True(t, breakup.CGST.Add(breakup.SGST).Equals(breakup.Tax),
				"amount %s: cgst %s + sgst %s != tax %s",
				amount, breakup.CGST.StringFixed(), breakup.SGST.StringFixed(), breakup.Tax.StringFixed())
		}
	})

	t.Run("exclusive total round-trips through inclusive", func(t *testing.T) {
		rates := []int64{0, 5, 12, 18, 28}
		amounts := []string{"0.01", "7", "99.99", "123.45", "1000", "6.60"}
		for _, rate := range rates {
			for _, amount := range amounts {
				exclusive, err := ComputeExclusive(money(t, amount), decimal.NewFromInt(rate))
				require.NoError(t, err)

				inclusive, err := ComputeInclusive(exclusive.Total, decimal.NewFromInt(rate))
				require.NoError(t, err)

				assert.True(t, inclusive.Total.Equals(exclusive.Total),
					"amount %s at %d%%: exclusive total %s round-tripped to %s",
					amount, rate, exclusive.Total.StringFixed(), inclusive.Total.StringFixed())
			}
		}
	})

	t.Run("zero amount yields zero breakup", func(t *testing.T) {
		breakup, err := ComputeInclusive(valueobject.Zero(), decimal.NewFromInt(18))
		require.NoError(t, err)

		assert.True(t, breakup.Total.IsZero())
	})

	t.Run("rejects out of range rate", func(t *testing.T) {
		_, err := ComputeInclusive(money(t, "100"), decimal.NewFromFloat(100.5))
		assert.True(t, shared.IsCode(err, "INVALID_TAX_RATE"))
	})
}

func TestSplitGST(t *testing.T) {
	t.Run("even tax splits in half", func(t *testing.T) {
		cgst, sgst := splitGST(money(t, "18.00"))
		assert.Equal(t, "9.00", cgst.StringFixed())
		assert.Equal(t, "9.00", sgst.StringFixed())
	})

	t.Run("odd paise goes to SGST", func(t *testing.T) {
		cgst, sgst := splitGST(money(t, "0.05"))
		assert.Equal(t, "0.02", cgst.StringFixed())
		assert.Equal(t, "0.03", sgst.StringFixed())
	})
}
