package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")

	// ErrNetworkOrServer marks every failure that came back from, or never
	// reached, the remote catalog API: non-2xx responses and transport errors.
	ErrNetworkOrServer = errors.New("network or server error")
)

// Error codes carried by AppError.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConflict      = "CONFLICT"
	CodeInternal      = "INTERNAL_ERROR"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidParams = "INVALID_PARAMETER"
)

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Upstream wraps a failed call to the remote catalog API. The result matches
// ErrNetworkOrServer as well as whatever err already matched. Status is taken
// from err when it is an AppError, otherwise 502.
func Upstream(op string, err error) *AppError {
	status := http.StatusBadGateway
	message := op + " failed"

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status != 0 {
			status = appErr.Status
		}
		message = fmt.Sprintf("%s failed: %s", op, appErr.Message)
	}

	return &AppError{
		Code:    CodeUpstream,
		Message: message,
		Status:  status,
		Err:     fmt.Errorf("%w: %w", ErrNetworkOrServer, err),
	}
}

// IsNetworkOrServer reports whether err came from the remote catalog API.
func IsNetworkOrServer(err error) bool {
	return errors.Is(err, ErrNetworkOrServer)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNetworkOrServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
