package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"job-copilot-backend/internal/domain"
)

// Regex patterns
var (
	// E164-like phone after stripping separators: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// Separators people type inside phone numbers
	phoneSeparators = regexp.MustCompile(`[\s().-]`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("vocab_status", VocabStatus)
	_ = v.RegisterValidation("field_type", KnownFieldType)
}

// New returns a validator with the custom tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// ValidPhone validates a phone number structure.
// Spaces, dashes, dots and parentheses are ignored.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(phoneSeparators.ReplaceAllString(val, ""))
}

// VocabStatus accepts only members of the application status vocabulary
func VocabStatus(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return domain.Status(val).Valid()
}

// KnownFieldType accepts only the declared form field types
func KnownFieldType(fl validator.FieldLevel) bool {
	val := domain.FieldType(fl.Field().String())
	for _, t := range domain.FieldTypes {
		if t == val {
			return true
		}
	}
	return false
}
