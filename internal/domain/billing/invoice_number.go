package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FinancialYear is an Indian financial year (April 1 through March 31),
// identified by the calendar year it starts in.
type FinancialYear struct {
	startYear int
}

// FinancialYearOf returns the financial year containing the given date
func FinancialYearOf(t time.Time) FinancialYear {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return FinancialYear{startYear: year}
}

// NewFinancialYear returns the financial year starting April 1 of the given year
func NewFinancialYear(startYear int) FinancialYear {
	return FinancialYear{startYear: startYear}
}

// StartYear returns the calendar year the financial year starts in
func (fy FinancialYear) StartYear() int {
	return fy.startYear
}

// Code returns the two-digit year-pair encoding, e.g. "25-26" for FY 2025-26
func (fy FinancialYear) Code() string {
	return fmt.Sprintf("%02d-%02d", fy.startYear%100, (fy.startYear+1)%100)
}

// Start returns the first instant of the financial year
func (fy FinancialYear) Start() time.Time {
	return time.Date(fy.startYear, time.April, 1, 0, 0, 0, 0, time.Local)
}

// Contains returns true if the given date falls within the financial year
func (fy FinancialYear) Contains(t time.Time) bool {
	return FinancialYearOf(t) == fy
}

// String returns the code representation
func (fy FinancialYear) String() string {
	return fy.Code()
}

// InvoiceNumberPrefix returns the text prefix shared by all invoice numbers of
// a financial year and store prefix, e.g. "25-26/AGT-". Sequence scans must
// match on this exact prefix to avoid cross-contamination between store
// prefixes or year boundaries.
func InvoiceNumberPrefix(fy FinancialYear, storePrefix string) string {
	return fy.Code() + "/" + storePrefix + "-"
}

// FormatInvoiceNumber builds an invoice number from its parts,
// e.g. "25-26/AGT-007"
func FormatInvoiceNumber(fy FinancialYear, storePrefix string, sequence int) string {
	return fmt.Sprintf("%s%03d", InvoiceNumberPrefix(fy, storePrefix), sequence)
}

// ParseInvoiceSequence extracts the sequence number from an invoice number,
// provided it belongs to the given financial year and store prefix. Returns
// (0, false) for numbers from another year/prefix or with an unparseable
// trailing segment; a malformed historical number must never abort numbering.
func ParseInvoiceSequence(number string, fy FinancialYear, storePrefix string) (int, bool) {
	prefix := InvoiceNumberPrefix(fy, storePrefix)
	if !strings.HasPrefix(number, prefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextInvoiceNumber returns the invoice number following lastIssued for the
// financial year containing referenceDate. If lastIssued is empty, belongs to
// a different year or prefix, or cannot be parsed, numbering restarts at 1.
func NextInvoiceNumber(storePrefix string, referenceDate time.Time, lastIssued string) string {
	fy := FinancialYearOf(referenceDate)
	seq, ok := ParseInvoiceSequence(lastIssued, fy, storePrefix)
	if !ok {
		seq = 0
	}
	return FormatInvoiceNumber(fy, storePrefix, seq+1)
}
