package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":         "{field} is required",
	"required_if":      "{field} is required when {param}",
	"required_without": "{field} is required when {param} is missing",
	"gte":              "{field} must be greater than or equal to {param}",
	"lte":              "{field} must be less than or equal to {param}",
	"min":              "{field} must be at least {param}",
	"max":              "{field} must be at most {param}",
	"oneof":            "{field} must be one of {param}",
	"email":            "{field} must be a valid email address",
	"uuid":             "{field} must be a valid id",
	"roles":            "{field} must only contain known roles",
	"gtfield":          "{field} must be after {param}",
	"mimetypes":        "{field} must be one of {param}",
	"maxfilesize":      "{field} must be at most {param} MB",
}

// message renders the first failed rule. Rules without a template fall back to the library text.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, fieldErr := range valErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return valErrors.Error()
}
