package partner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended" // Suspended due to credit issues
)

// String returns the string representation of CustomerStatus
func (s CustomerStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusSuspended:
		return true
	}
	return false
}

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations. The customer's
// outstanding credit balance is not stored here; it is always derived from
// the credit ledger.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string            `gorm:"type:varchar(200);not null;index"`
	Phone       string            `gorm:"type:varchar(50);index"`
	Email       string            `gorm:"type:varchar(200)"`
	Address     string            `gorm:"type:text"`
	GSTIN       string            `gorm:"type:varchar(15)"` // GST identification number, optional
	CreditLimit valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	Status      CustomerStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             phone,
		CreditLimit:       valueobject.Zero(),
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, phone, email, address string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetGSTIN sets the customer's GST identification number
func (c *Customer) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be a valid 15-character GST number")
	}

	c.GSTIN = gstin
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCreditLimit sets the customer's credit limit. A zero limit means no
// credit sales are allowed for this customer.
func (c *Customer) SetCreditLimit(limit valueobject.Money) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit.RoundStorage()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerCreditLimitChangedEvent(c))

	return nil
}

// CheckCredit verifies that extending additional credit would keep the
// customer within their credit limit, given their current outstanding
// balance. The returned error carries the limit, the outstanding amount, and
// the requested amount so the point of sale can present an override decision.
func (c *Customer) CheckCredit(outstanding, requested valueobject.Money) error {
	if c.Status == CustomerStatusSuspended {
		return shared.NewDomainError(shared.CodeCreditLimitExceeded,
			fmt.Sprintf("Customer %s is suspended from credit sales", c.Name))
	}
	if outstanding.Add(requested).GreaterThan(c.CreditLimit) {
		return shared.NewDomainError(shared.CodeCreditLimitExceeded,
			fmt.Sprintf("Credit of %s would take customer %s to %s, above their limit of %s",
				requested.StringFixed(), c.Name,
				outstanding.Add(requested).StringFixed(), c.CreditLimit.StringFixed()))
	}
	return nil
}

// SetNotes sets free-text notes on the customer
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return nil
	}

	oldStatus := c.Status
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusActive))

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return nil
	}

	oldStatus := c.Status
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusInactive))

	return nil
}

// Suspend suspends the customer from further credit sales
func (c *Customer) Suspend() error {
	if c.Status == CustomerStatusSuspended {
		return nil
	}

	oldStatus := c.Status
	c.Status = CustomerStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusSuspended))

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,18}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
)

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
