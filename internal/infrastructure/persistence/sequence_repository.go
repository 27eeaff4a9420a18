package persistence

import (
	"context"
	"time"

	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSequenceRepository implements billing.SequenceRepository with an
// explicit counter row per (financial year, prefix). The row is advanced with
// a single UPDATE inside the checkout transaction, so the database row lock
// serializes concurrent checkouts and the unique index on invoice numbers
// catches anything that slips through.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next atomically increments and returns the counter for the given financial
// year and prefix. On first use for a (year, prefix) pair it seeds the counter
// from the highest invoice number already issued, so the sequence continues
// correctly after a migration from an older install.
func (r *GormSequenceRepository) Next(ctx context.Context, fy billing.FinancialYear, prefix string) (int, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&models.InvoiceSequenceModel{}).
		Where("financial_year = ? AND prefix = ?", fy.Code(), prefix).
		Updates(map[string]interface{}{
			"last_sequence": gorm.Expr("last_sequence + 1"),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		seq, err := r.seedCounter(db, fy, prefix)
		if err != nil {
			return 0, err
		}
		return seq, nil
	}

	var row models.InvoiceSequenceModel
	if err := db.
		Where("financial_year = ? AND prefix = ?", fy.Code(), prefix).
		First(&row).Error; err != nil {
		return 0, err
	}
	return row.LastSequence, nil
}

// seedCounter creates the counter row for a (year, prefix) pair that has no
// row yet, starting from the highest sequence already present in the sales
// table. A concurrent seed of the same pair hits the primary key and is
// reported as a unique violation for the caller's retry loop.
func (r *GormSequenceRepository) seedCounter(db *gorm.DB, fy billing.FinancialYear, prefix string) (int, error) {
	var numbers []string
	like := billing.InvoiceNumberPrefix(fy, prefix) + "%"
	if err := db.Model(&billing.Sale{}).
		Where("invoice_number LIKE ?", like).
		Pluck("invoice_number", &numbers).Error; err != nil {
		return 0, err
	}

	highest := 0
	for _, number := range numbers {
		if seq, ok := billing.ParseInvoiceSequence(number, fy, prefix); ok && seq > highest {
			highest = seq
		}
	}

	next := highest + 1
	row := models.InvoiceSequenceModel{
		FinancialYear: fy.Code(),
		Prefix:        prefix,
		LastSequence:  next,
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, shared.NewDomainError(shared.CodeSequenceConflict, "Invoice counter was seeded concurrently")
		}
		return 0, err
	}
	return next, nil
}

var _ billing.SequenceRepository = (*GormSequenceRepository)(nil)
