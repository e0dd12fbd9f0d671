package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Fields     map[string]string
	Retryable  bool
	RetryAfter int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeThirdPartyError    = "THIRD_PARTY_ERROR"
	ErrCodeSubmissionFailed   = "SUBMISSION_FAILED"
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

// FieldValidationError reports every rejected field at once, keyed by field name.
func FieldValidationError(fields map[string]string) *AppError {
	return ValidationError("Validation failed").WithFields(fields)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

// SubmissionError is a failed order submission. The caller may resubmit.
func SubmissionError(message string) *AppError {
	e := NewAppError(ErrCodeSubmissionFailed, message, http.StatusBadGateway)
	e.Retryable = true

	return e
}

// PreconditionError marks a programming error: a call that the API shape should have ruled out.
func PreconditionError(message string) *AppError {
	return NewAppError(ErrCodePreconditionFailed, message, http.StatusInternalServerError)
}

// TooManyRequestsError asks the caller to wait retryAfter seconds.
func TooManyRequestsError(message string, retryAfter int) *AppError {
	e := NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
	e.Retryable = true
	e.RetryAfter = retryAfter

	return e.WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// IsRetryable reports whether err is an AppError the user may retry.
func IsRetryable(err error) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Retryable
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason)).WithFields(map[string]string{field: reason})
}
