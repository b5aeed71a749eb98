// Package validation implements the required-field gate applied to incoming
// write payloads. A payload declares which of its fields are required through
// `validate:"notblank"` tags and supplies the human-readable message for each;
// the gate reports the messages of all failing fields in declaration order.
package validation

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// Validatable is a payload that can be run through the required-field gate.
type Validatable interface {
	// ValidationMessages maps struct field names to the message reported
	// when the field is missing or blank.
	ValidationMessages() map[string]string
}

// Validator checks payloads against their declared field rules.
type Validator struct {
	validate *validator.Validate
}

func notBlank(fieldLevel validator.FieldLevel) bool {
	return strings.TrimSpace(fieldLevel.Field().String()) != ""
}

// New returns a Validator with the custom `notblank` rule registered.
// `notblank` fails on absent fields, empty strings, and whitespace-only values.
func New() (*Validator, error) {
	validate := validator.New()

	if err := validate.RegisterValidation("notblank", notBlank); err != nil {
		return nil, err
	}

	return &Validator{validate: validate}, nil
}

// CollectErrors validates the payload and returns one message per failing
// rule, ordered by field declaration. A nil, empty result means the payload
// passed. The second return value reports failures of the validator itself,
// not of the payload.
func (v *Validator) CollectErrors(payload Validatable) ([]string, error) {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	messages := payload.ValidationMessages()
	result := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		message, found := messages[fieldError.Field()]
		if !found {
			message = fmt.Sprintf("Please, enter a value for the `%s` field", fieldError.Field())
		}
		result = append(result, message)
	}

	return result, nil
}
