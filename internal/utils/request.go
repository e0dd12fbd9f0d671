package utils

import (
	"log/slog"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils/response"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/validation"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing the error
// response itself and reporting false when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, v *validation.Validator) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := v.Struct(dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, err)
		return false
	}

	return true
}

// DecodeBody decodes the JSON body into dest without validating it, writing the error
// response itself on failure.
func DecodeBody(r *http.Request, w http.ResponseWriter, dest any) bool {
	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	return true
}
