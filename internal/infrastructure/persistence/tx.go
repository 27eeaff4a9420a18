package persistence

import (
	"context"

	"github.com/shopdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txContextKey struct{}

// GormTransactionManager implements shared.TransactionManager by injecting the
// transactional *gorm.DB into the context. Repositories created with the same
// base connection pick the transaction up via dbFromContext, so a service can
// compose several repository calls into one atomic unit without the
// repositories knowing about each other.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. Nested calls reuse
// the transaction already in the context.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// dbFromContext returns the transactional DB from the context if one is
// present, falling back to the repository's own connection.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)
