// Package validation turns raw customer input into accepted, typed checkout values.
package validation

import (
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var (
	postalCodePattern = regexp.MustCompile(`^\d{3}-?\d{4}$`)
	phonePattern      = regexp.MustCompile(`^[\d-]+$`)
)

type Validator struct {
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	_ = validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate, sanitizer: bluemonday.StrictPolicy()}
}

// Struct validates any request DTO and converts failures into a field-keyed AppError.
func (v *Validator) Struct(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return appErrors.InternalError("Unexpected validation error").WithError(err)
	}

	fields := make(map[string]string, len(validationErrs))

	for _, fieldErr := range validationErrs {
		name := fieldName(fieldErr)
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = message(fieldErr)
	}

	return appErrors.FieldValidationError(fields).WithError(err)
}

// clean trims whitespace and strips markup from free-text input. Entities escaped by
// the sanitizer are decoded again so "A & B" survives unchanged.
func (v *Validator) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(v.sanitizer.Sanitize(strings.TrimSpace(s))))
}

// fieldName drops the top-level struct name from the namespace, so nested fields
// read like "shipping_address.postal_code".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "postalcode":
		return "must be a postal code in the form 123-4567"
	case "phone":
		return "must contain only digits and hyphens"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("is invalid: %s=%s", fe.Tag(), fe.Param())
	}
}
