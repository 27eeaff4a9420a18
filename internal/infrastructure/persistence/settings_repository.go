package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopdesk/backend/internal/domain/billing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
)

// Setting keys stored in the settings table.
const (
	SettingInvoicePrefix = "invoice_prefix"
	SettingShopGSTIN     = "shop_gstin"
)

// GormSettingsRepository implements billing.SettingsRepository over the
// settings key/value table. The shop owner can change the invoice prefix from
// the UI, so the table wins over the configured default.
type GormSettingsRepository struct {
	db            *gorm.DB
	defaultPrefix string
}

// NewGormSettingsRepository creates a new GormSettingsRepository. The default
// prefix is used when the settings table has no invoice_prefix row yet.
func NewGormSettingsRepository(db *gorm.DB, defaultPrefix string) *GormSettingsRepository {
	return &GormSettingsRepository{db: db, defaultPrefix: defaultPrefix}
}

// InvoicePrefix returns the configured invoice prefix
func (r *GormSettingsRepository) InvoicePrefix(ctx context.Context) (string, error) {
	value, err := r.get(ctx, SettingInvoicePrefix)
	if err != nil {
		return "", err
	}
	if value == "" {
		return r.defaultPrefix, nil
	}
	return value, nil
}

// ShopGSTIN returns the shop's GST identification number, empty if unset
func (r *GormSettingsRepository) ShopGSTIN(ctx context.Context) (string, error) {
	return r.get(ctx, SettingShopGSTIN)
}

// Set upserts a setting value
func (r *GormSettingsRepository) Set(ctx context.Context, key, value string) error {
	row := models.SettingModel{Key: key, Value: value, UpdatedAt: time.Now()}
	return dbFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *GormSettingsRepository) get(ctx context.Context, key string) (string, error) {
	var row models.SettingModel
	if err := dbFromContext(ctx, r.db).First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

var _ billing.SettingsRepository = (*GormSettingsRepository)(nil)
