package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/ledger"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ledger.LedgerRepository using GORM.
// The ledger is append-only, so the repository exposes no update or delete.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new ledger entry
func (r *GormLedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	return dbFromContext(ctx, r.db).Create(entry).Error
}

// FindByCustomerID retrieves a customer's entries, newest first
func (r *GormLedgerRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	query := applySort(
		dbFromContext(ctx, r.db).Where("customer_id = ?", customerID),
		filter, LedgerEntrySortFields, "entry_date")
	if err := applyPagination(query, filter).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByCustomerIDAndDateRange retrieves a customer's entries within a date
// range, oldest first, for statement rendering
func (r *GormLedgerRepository) FindByCustomerIDAndDateRange(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	if err := dbFromContext(ctx, r.db).
		Where("customer_id = ? AND entry_date >= ? AND entry_date <= ?", customerID, from, to).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// OutstandingBalance computes the customer's current outstanding credit as
// the signed sum of entry amounts. The balance is never cached.
func (r *GormLedgerRepository) OutstandingBalance(ctx context.Context, customerID uuid.UUID) (valueobject.Money, error) {
	var total decimal.NullDecimal
	err := dbFromContext(ctx, r.db).
		Model(&ledger.Entry{}).
		Select("SUM(CASE WHEN entry_type = ? THEN amount ELSE -amount END)", ledger.EntryTypeCreditSale).
		Where("customer_id = ?", customerID).
		Scan(&total).Error
	if err != nil {
		return valueobject.Zero(), err
	}
	if !total.Valid {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoney(total.Decimal), nil
}

// BalanceAsOf computes the outstanding credit from entries dated strictly
// before the given time
func (r *GormLedgerRepository) BalanceAsOf(ctx context.Context, customerID uuid.UUID, asOf time.Time) (valueobject.Money, error) {
	var total decimal.NullDecimal
	err := dbFromContext(ctx, r.db).
		Model(&ledger.Entry{}).
		Select("SUM(CASE WHEN entry_type = ? THEN amount ELSE -amount END)", ledger.EntryTypeCreditSale).
		Where("customer_id = ? AND entry_date < ?", customerID, asOf).
		Scan(&total).Error
	if err != nil {
		return valueobject.Zero(), err
	}
	if !total.Valid {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoney(total.Decimal), nil
}

// CountByCustomerID returns the number of entries for a customer
func (r *GormLedgerRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&ledger.Entry{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ ledger.LedgerRepository = (*GormLedgerRepository)(nil)
