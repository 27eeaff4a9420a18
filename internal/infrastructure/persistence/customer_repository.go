package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := dbFromContext(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	var customer partner.Customer
	if err := dbFromContext(ctx, r.db).
		Where("phone = ?", phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// SearchByName finds customers whose name contains the given text
func (r *GormCustomerRepository) SearchByName(ctx context.Context, name string, filter shared.Filter) ([]*partner.Customer, error) {
	var customers []*partner.Customer
	query := dbFromContext(ctx, r.db).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC")
	if err := applyPagination(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Customer, error) {
	var customers []*partner.Customer
	query := applySort(dbFromContext(ctx, r.db), filter, CustomerSortFields, "name")
	if err := applyPagination(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindActive finds all active customers
func (r *GormCustomerRepository) FindActive(ctx context.Context, filter shared.Filter) ([]*partner.Customer, error) {
	var customers []*partner.Customer
	query := dbFromContext(ctx, r.db).
		Where("status = ?", partner.CustomerStatusActive).
		Order("name ASC")
	if err := applyPagination(query, filter).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return dbFromContext(ctx, r.db).Save(customer).Error
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total number of customers
func (r *GormCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).Model(&partner.Customer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPhone checks whether a customer with the phone number exists
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).
		Model(&partner.Customer{}).
		Where("phone = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
