package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements billing.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists a new sale with its line items and writes the legacy
// invoices/invoice_items projection in the same unit of work. A duplicate
// invoice number surfaces as a SEQUENCE_CONFLICT domain error so the checkout
// can draw a fresh number and retry.
func (r *GormSaleRepository) Save(ctx context.Context, sale *billing.Sale) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Create(sale).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeSequenceConflict, "Invoice number already taken")
		}
		return err
	}

	invoice, items := models.InvoiceProjectionFromSale(sale)
	if err := db.Create(&invoice).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError(shared.CodeSequenceConflict, "Invoice number already taken")
		}
		return err
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// Update persists changes to an existing sale with optimistic locking
func (r *GormSaleRepository) Update(ctx context.Context, sale *billing.Sale) error {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&billing.Sale{}).
		Where("id = ? AND version = ?", sale.ID, sale.Version-1).
		Updates(map[string]interface{}{
			"cash_amount":    sale.CashAmount,
			"upi_amount":     sale.UPIAmount,
			"credit_amount":  sale.CreditAmount,
			"payment_method": sale.PaymentMethod,
			"payment_status": sale.PaymentStatus,
			"paid_at":        sale.PaidAt,
			"notes":          sale.Notes,
			"version":        sale.Version,
			"updated_at":     sale.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "Sale was modified by another operation")
	}
	return nil
}

// FindByID retrieves a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Sale, error) {
	var sale billing.Sale
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByInvoiceNumber retrieves a sale by its invoice number
func (r *GormSaleRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Sale, error) {
	var sale billing.Sale
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("invoice_number = ?", invoiceNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByCustomerID retrieves sales for a customer, newest first
func (r *GormSaleRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*billing.Sale, error) {
	var sales []*billing.Sale
	query := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("invoice_date DESC, created_at DESC")
	if err := applyPagination(query, filter).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindWithOutstandingCredit retrieves finalized sales for a customer that
// still carry unpaid credit, oldest first so payments settle the oldest
// invoice first
func (r *GormSaleRepository) FindWithOutstandingCredit(ctx context.Context, customerID uuid.UUID) ([]*billing.Sale, error) {
	var sales []*billing.Sale
	if err := dbFromContext(ctx, r.db).
		Preload("Items").
		Where("customer_id = ? AND finalized = ? AND credit_amount > 0", customerID, true).
		Order("invoice_date ASC, created_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// List retrieves sales with pagination, newest first unless the filter asks
// for a different ordering
func (r *GormSaleRepository) List(ctx context.Context, filter shared.Filter) ([]*billing.Sale, error) {
	var sales []*billing.Sale
	query := applySort(dbFromContext(ctx, r.db).Preload("Items"), filter, SaleSortFields, "invoice_date")
	if err := applyPagination(query, filter).Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Count returns the total number of sales
func (r *GormSaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).Model(&billing.Sale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver (sqlite or postgres).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

var _ billing.SaleRepository = (*GormSaleRepository)(nil)
