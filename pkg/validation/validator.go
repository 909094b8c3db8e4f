package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using its `validate` tags and
// returns a readable error naming the offending fields.
func ValidateStruct(s any) error {
	if s == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fieldError.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fieldError.Field(), fieldError.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", fieldError.Field(), fieldError.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", fieldError.Field(), fieldError.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be >= %s", fieldError.Field(), fieldError.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be > %s", fieldError.Field(), fieldError.Param()))
		case "lt":
			messages = append(messages, fmt.Sprintf("%s must be < %s", fieldError.Field(), fieldError.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fieldError.Field(), fieldError.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
