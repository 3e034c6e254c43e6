package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Profile fields
	"Name":     "Full Name",
	"Email":    "Email",
	"Phone":    "Phone Number",
	"Location": "Location",
	"LinkedIn": "LinkedIn URL",
	"Website":  "Website",
	"Skills":   "Skills",
	"URL":      "Project URL",

	// Application fields
	"Company":     "Company",
	"Role":        "Role",
	"AppliedDate": "Applied Date",
	"Status":      "Status",
	"AppliedVia":  "Applied Via",

	// Autofill fields
	"ID":    "Field ID",
	"Label": "Field Label",
	"Type":  "Field Type",

	// Answer and feedback fields
	"Question":  "Question",
	"ContentID": "Content ID",
	"Verdict":   "Feedback Type",
	"Comment":   "Comment",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "datetime":
		return fmt.Sprintf("%s: must be a date formatted as YYYY-MM-DD", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)

	case "vocab_status":
		return fmt.Sprintf("%s: unknown application status %q", label, e.Value())

	case "field_type":
		return fmt.Sprintf("%s: unsupported field type %q", label, e.Value())

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
