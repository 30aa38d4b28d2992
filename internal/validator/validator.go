package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/kinoteka/cinema-reservation/internal/domain"
)

var phoneRgx = regexp.MustCompile(`^\+?[0-9 -]{9,15}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("ticket_type", validateTicketType)
	validator.RegisterValidation("phone", validatePhone)

	return validator
}

func validateTicketType(fl validator.FieldLevel) bool {
	switch domain.TicketType(fl.Field().String()) {
	case domain.TicketNormal, domain.TicketReduced:
		return true
	}

	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "ticket_type":
		return "must be either 'normal' or 'reduced'"
	case "phone":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	case "numeric":
		return "must contain only digits"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", err.Param())
	default:
		return "is invalid"
	}
}
