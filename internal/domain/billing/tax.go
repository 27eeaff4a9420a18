package billing

import (
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// TaxBreakup is the result of a GST computation: the taxable value, the total
// tax, its CGST/SGST halves, and the gross total. All amounts are at the
// storage scale.
type TaxBreakup struct {
	Taxable valueobject.Money
	Tax     valueobject.Money
	CGST    valueobject.Money
	SGST    valueobject.Money
	Total   valueobject.Money
}

// ZeroTaxBreakup returns an all-zero breakup
func ZeroTaxBreakup() TaxBreakup {
	z := valueobject.Zero()
	return TaxBreakup{Taxable: z, Tax: z, CGST: z, SGST: z, Total: z}
}

// validateRate checks that a GST rate percentage is within [0, 100]
func validateRate(ratePercent decimal.Decimal) error {
	if ratePercent.IsNegative() || ratePercent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	return nil
}

// splitGST derives the CGST/SGST halves from a total tax amount.
// CGST is half the tax truncated to the storage scale; SGST is the remainder.
// Deriving SGST by subtraction rather than halving twice guarantees
// CGST + SGST == Tax even when the tax has an odd number of paise.
func splitGST(tax valueobject.Money) (cgst, sgst valueobject.Money) {
	half, _ := tax.Divide(two)
	cgst = half.TruncateStorage()
	sgst = tax.Subtract(cgst)
	return cgst, sgst
}

// ComputeExclusive computes GST on a tax-exclusive amount: tax is added on top.
//
//	taxable = amount; tax = taxable * rate/100; total = taxable + tax
//
// A zero or negative amount degrades to an all-zero breakup rather than an
// error: it is an empty line, not a crash.
func ComputeExclusive(amount valueobject.Money, ratePercent decimal.Decimal) (TaxBreakup, error) {
	if err := validateRate(ratePercent); err != nil {
		return TaxBreakup{}, err
	}
	if amount.IsZero() || amount.IsNegative() {
		return ZeroTaxBreakup(), nil
	}

	taxable := amount.RoundStorage()
	tax := taxable.Multiply(ratePercent.Div(hundred)).RoundStorage()
	total := taxable.Add(tax)
	cgst, sgst := splitGST(tax)

	return TaxBreakup{Taxable: taxable, Tax: tax, CGST: cgst, SGST: sgst, Total: total}, nil
}

// ComputeInclusive computes GST on a tax-inclusive amount: the quoted price
// already contains tax.
//
//	total = amount; taxable = amount / (1 + rate/100); tax = total - taxable
//
// Tax is derived by subtraction from the rounded taxable value so that
// taxable + tax reconstructs the quoted total exactly.
func ComputeInclusive(amount valueobject.Money, ratePercent decimal.Decimal) (TaxBreakup, error) {
	if err := validateRate(ratePercent); err != nil {
		return TaxBreakup{}, err
	}
	if amount.IsZero() || amount.IsNegative() {
		return ZeroTaxBreakup(), nil
	}

	total := amount.RoundStorage()
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	taxable, err := total.Divide(divisor)
	if err != nil {
		return TaxBreakup{}, err
	}
	taxable = taxable.RoundStorage()
	tax := total.Subtract(taxable)
	cgst, sgst := splitGST(tax)

	return TaxBreakup{Taxable: taxable, Tax: tax, CGST: cgst, SGST: sgst, Total: total}, nil
}
