package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

// Custom binding tags shared by all request DTOs. Registered at package init
// so handler tests exercise the same binding rules as the server.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("gstin", validateGSTIN)
}

// validateMoney accepts a non-negative decimal string with at most two
// fractional digits, the shape every amount takes on the wire.
func validateMoney(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Exponent() >= -2
}

func validateGSTIN(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return gstinPattern.MatchString(value)
}
