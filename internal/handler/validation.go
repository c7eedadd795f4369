package handler

import (
	apperrors "github.com/mybabyhq/site-server-go/internal/errors"
	"github.com/mybabyhq/site-server-go/internal/util"
)

// FieldRule is one declarative constraint on a request field. Each endpoint
// declares its rule set once; violations surface as field-level details on a
// single validation error.
type FieldRule struct {
	Field    string
	Label    string
	Required bool
	Email    bool
}

// ValidateFields checks values against rules and returns nil when all pass,
// or a validation AppError whose Details map field names to messages.
func ValidateFields(values map[string]string, rules []FieldRule) error {
	details := map[string]string{}
	for _, rule := range rules {
		v := values[rule.Field]
		if rule.Required && v == "" {
			details[rule.Field] = rule.Label + " is required"
			continue
		}
		if rule.Email && v != "" && !util.IsValidEmail(v) {
			details[rule.Field] = "Valid email is required"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return apperrors.ValidationError("Invalid form data").WithDetails(details)
}
