package validation

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxIdentifierLength bounds settlement identifiers
	MaxIdentifierLength = 256
)

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("identifier", validIdentifier); err != nil {
		panic(fmt.Sprintf("failed to register identifier validation: %v", err))
	}
}

// validIdentifier rejects identifiers with control characters or
// surrounding whitespace.
func validIdentifier(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > MaxIdentifierLength {
		return false
	}
	runes := []rune(s)
	if unicode.IsSpace(runes[0]) || unicode.IsSpace(runes[len(runes)-1]) {
		return false
	}
	for _, r := range runes {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ValidateStruct validates a struct against its `validate` tags and returns
// the first failure in a readable form.
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateIdentifier validates a single settlement identifier
func ValidateIdentifier(id string) error {
	if err := validate.Var(id, "identifier"); err != nil {
		return fmt.Errorf("identifier %q is invalid (empty, too long, padded or containing control characters)", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, param, e.Value())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "identifier":
			return fmt.Errorf("%s: %q is not a valid identifier", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
