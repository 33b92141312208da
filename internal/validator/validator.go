package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/HarishKumarG/BMS-project/api"
	"github.com/HarishKumarG/BMS-project/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired      = "is required"
	ErrMinValue      = "must be at least %s"
	ErrMaxValue      = "must be at most %s"
	ErrMinItems      = "must contain at least %s items"
	ErrMaxItems      = "must contain at most %s items"
	ErrMaxLength     = "must be at most %s characters long"
	ErrSeatNumber    = "must be a seat number such as A1 or J10"
	ErrTicketPrice   = "must be between 150 and 200"
	ErrOneOf         = "must be one of: %s"
	ErrInvalidFormat = "is invalid"
)

var seatNumberRgx = regexp.MustCompile(`^[A-Z](10|[1-9])$`)

var paymentMethods = []api.PaymentMethod{api.CreditCard, api.DebitCard, api.Upi, api.NetBanking, api.Wallet}

var paymentStatuses = []api.PaymentStatus{api.Pending, api.Completed, api.Failed}

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	validator.RegisterValidation("seat_number", validateSeatNumber)
	validator.RegisterValidation("ticket_price", validateTicketPrice)
	validator.RegisterStructValidation(validatePaymentRequest, api.CreatePaymentRequest{})

	return validator
}

// jsonFieldName reports fields by their JSON name so messages match the request body.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// decimalValue lets tags treat decimals as their canonical string.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateSeatNumber(fl validator.FieldLevel) bool {
	return seatNumberRgx.MatchString(fl.Field().String())
}

func validateTicketPrice(fl validator.FieldLevel) bool {
	price, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	return !price.LessThan(domain.MinTicketPrice) && !price.GreaterThan(domain.MaxTicketPrice)
}

func validatePaymentRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(api.CreatePaymentRequest)

	if !contains(paymentMethods, req.PaymentMethod) {
		sl.ReportError(req.PaymentMethod, "payment_method", "PaymentMethod", "oneof", joinValues(paymentMethods))
	}

	if req.Status != nil && !contains(paymentStatuses, *req.Status) {
		sl.ReportError(*req.Status, "status", "Status", "oneof", joinValues(paymentStatuses))
	}
}

func contains[T comparable](values []T, v T) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	isCollection := err.Kind() == reflect.Slice || err.Kind() == reflect.Array

	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if isCollection {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		switch {
		case isCollection:
			return fmt.Sprintf(ErrMaxItems, err.Param())
		case err.Kind() == reflect.String:
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "seat_number":
		return ErrSeatNumber
	case "ticket_price":
		return ErrTicketPrice
	case "oneof":
		return fmt.Sprintf(ErrOneOf, strings.ReplaceAll(err.Param(), " ", ", "))
	default:
		return ErrInvalidFormat
	}
}
