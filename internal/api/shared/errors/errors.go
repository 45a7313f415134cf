package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodePaymentMismatch  ErrorCode = "payment_mismatch"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError    ErrorCode = "internal_error"
	ErrCodeDatabaseError    ErrorCode = "database_error"
	ErrCodeSettlementFailed ErrorCode = "settlement_failed"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// HTTPStatus returns the HTTP status code the error is served with
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodePaymentMismatch:
		return http.StatusPaymentRequired
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeSettlementFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromDomain translates an error returned by the marketplace into an APIError.
// Errors that are already APIErrors are returned as they are; anything unrecognised
// becomes an internal error carrying the given message.
func FromDomain(err error, message string) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	details := err.Error()
	switch {
	case errors.Is(err, domain.ErrUnknownAsset):
		return NewNotFoundError("Asset not found", details)
	case errors.Is(err, domain.ErrUnauthorized):
		return NewForbiddenError("Caller is not permitted to perform this operation", details)
	case errors.Is(err, domain.ErrAlreadyListed):
		return NewConflictError("Asset is already listed", details)
	case errors.Is(err, domain.ErrNotListed):
		return NewConflictError("Asset is not listed", details)
	case errors.Is(err, domain.ErrReentrancyViolation):
		return NewConflictError("Asset is being modified by another operation", details)
	case errors.Is(err, domain.ErrInvalidPrice), errors.Is(err, domain.ErrInvalidRoyalty):
		return NewValidationError(details)
	case errors.Is(err, domain.ErrPaymentMismatch):
		return NewPaymentMismatchError(details)
	case errors.Is(err, domain.ErrSettlementFailed):
		return NewSettlementError(message, details)
	default:
		return NewInternalError(message, details)
	}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewPaymentMismatchError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodePaymentMismatch,
		Message: "Payment does not match the required amount",
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError() *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: "Too many requests",
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewSettlementError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeSettlementFailed,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}
