package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the currency code for all monetary values in the system.
// The system is single-currency (Indian Rupee); amounts are stored and
// displayed with two decimal places.
const Currency = "INR"

// StorageScale is the number of decimal places used for persistence and display.
// Intermediate arithmetic stays exact; rounding happens only at this boundary.
const StorageScale int32 = 2

// Money is a value object representing an exact monetary amount.
// It is immutable - all operations return new Money instances.
//
// Money must be constructed from a string, integer paise, or an existing
// decimal. There is deliberately no float64 constructor: a binary float that
// has already lost precision must never enter monetary arithmetic.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from an exact decimal amount
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return Money{amount: d}, nil
}

// NewMoneyFromPaise creates Money from an integer number of paise (1/100 INR)
func NewMoneyFromPaise(paise int64) Money {
	return Money{amount: decimal.New(paise, -StorageScale)}
}

// Zero returns a zero-value Money
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns a new Money with the difference
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Multiply returns a new Money multiplied by the given factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Divide returns a new Money divided by the given divisor
// Returns error if divisor is zero
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, errors.New("cannot divide by zero")
	}
	return Money{amount: m.amount.Div(divisor)}, nil
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns a new Money with the absolute value
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// RoundStorage returns a new Money rounded half-up to the storage scale
func (m Money) RoundStorage() Money {
	return Money{amount: m.amount.Round(StorageScale)}
}

// TruncateStorage returns a new Money truncated (rounded toward zero) to the
// storage scale
func (m Money) TruncateStorage() Money {
	return Money{amount: m.amount.Truncate(StorageScale)}
}

// Equals returns true if both Money values are numerically equal
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// LessThanOrEqual returns true if this Money is less than or equal to the other
func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// GreaterThan returns true if this Money is greater than the other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual returns true if this Money is greater than or equal to the other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// CalculatePercentage returns the given percentage of this Money
func (m Money) CalculatePercentage(percent decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(percent).Div(decimal.NewFromInt(100))}
}

// ApplyDiscount returns the Money after applying a percentage discount
func (m Money) ApplyDiscount(discountPercent decimal.Decimal) Money {
	return m.Subtract(m.CalculatePercentage(discountPercent))
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(StorageScale), Currency)
}

// StringFixed returns the amount as a string at the storage scale
func (m Money) StringFixed() string {
	return m.amount.StringFixed(StorageScale)
}

// InexactFloat64 returns the amount as a float64 for display purposes only
func (m Money) InexactFloat64() float64 {
	return m.amount.InexactFloat64()
}

// MarshalJSON implements json.Marshaler; amounts serialize as strings so that
// consumers never receive a binary float
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.StringFixed(StorageScale))
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	return nil
}

// Value implements driver.Valuer for database storage.
// Amounts are stored rounded to the storage scale.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Round(StorageScale).String(), nil
}

// Scan implements sql.Scanner for database retrieval. Numeric inputs are
// accepted because sqlite's column affinity hands decimals back as int64 or
// float64; at the storage scale of 2 the conversion is exact.
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case int64:
		m.amount = decimal.NewFromInt(v)
		return nil
	case float64:
		m.amount = decimal.NewFromFloat(v).Round(StorageScale)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount
	return nil
}
