package partner

import (
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// CustomerCreatedEvent is published when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string
	Phone string
}

// NewCustomerCreatedEvent creates a new customer created event
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("customer.created", "Customer", customer.ID),
		Name:            customer.Name,
		Phone:           customer.Phone,
	}
}

// CustomerUpdatedEvent is published when a customer's details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string
}

// NewCustomerUpdatedEvent creates a new customer updated event
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("customer.updated", "Customer", customer.ID),
		Name:            customer.Name,
	}
}

// CustomerCreditLimitChangedEvent is published when a customer's credit limit changes
type CustomerCreditLimitChangedEvent struct {
	shared.BaseDomainEvent
	CreditLimit valueobject.Money
}

// NewCustomerCreditLimitChangedEvent creates a new credit limit changed event
func NewCustomerCreditLimitChangedEvent(customer *Customer) *CustomerCreditLimitChangedEvent {
	return &CustomerCreditLimitChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("customer.credit_limit_changed", "Customer", customer.ID),
		CreditLimit:     customer.CreditLimit,
	}
}

// CustomerStatusChangedEvent is published when a customer's status changes
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus CustomerStatus
	NewStatus CustomerStatus
}

// NewCustomerStatusChangedEvent creates a new status changed event
func NewCustomerStatusChangedEvent(customer *Customer, oldStatus, newStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("customer.status_changed", "Customer", customer.ID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
