package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shopdesk/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
// Sort fields come straight from query parameters, so anything outside the
// whitelist never reaches the ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// SaleSortFields contains allowed sort fields for sales.
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"customer_name":  true,
	"grand_total":    true,
	"payment_status": true,
}

// CustomerSortFields contains allowed sort fields for customers.
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone":        true,
	"credit_limit": true,
	"status":       true,
}

// LedgerEntrySortFields contains allowed sort fields for ledger entries.
var LedgerEntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"entry_date": true,
	"entry_type": true,
	"amount":     true,
}

// applySort appends a validated ORDER BY clause from the filter, falling back
// to defaultField when no field is requested or the request is not whitelisted.
func applySort(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir)
}
