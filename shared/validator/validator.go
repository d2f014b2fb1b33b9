// Package validator decodes JSON request bodies and checks them with go-playground/validator.
// Failures come back as 400 failures carrying one readable message.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/role"

	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	custom := map[string]val.Func{
		"roles":       rolesValidation,
		"mimetypes":   mimetypesValidation,
		"maxfilesize": maxFileSizeValidation,
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

var knownRoles = []string{constant.RoleAdmin, constant.RoleManager, constant.RoleFrontOffice, constant.RoleHousekeeping}

// rolesValidation accepts a role, a list of roles or a role.Set when every entry is known.
func rolesValidation(field val.FieldLevel) bool {
	var ids []string

	switch value := field.Field().Interface().(type) {
	case string:
		ids = []string{value}
	case []string:
		ids = value
	case role.Set:
		ids = value.Slice()
	default:
		return false
	}

	for _, id := range ids {
		if !slices.Contains(knownRoles, strings.ToLower(strings.TrimSpace(id))) {
			return false
		}
	}

	return true
}

// mimetypesValidation checks an uploaded file header or a data URI against a space separated allow list.
func mimetypesValidation(field val.FieldLevel) bool {
	var contentType string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = dataURIContentType(value)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// dataURIContentType extracts image/png from data:image/png;base64,....
func dataURIContentType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}

	contentType, _, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return ""
	}

	return contentType
}

// maxFileSizeValidation takes its limit in megabytes, fractions allowed.
func maxFileSizeValidation(field val.FieldLevel) bool {
	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	var size int64

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		size = value.Size
	case string:
		size = int64(len(value))
	}

	return float64(size) <= maxMB*megabyte
}

func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
