package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/themilho/product-catalog/pkg/errors"
	"github.com/themilho/product-catalog/pkg/logger"
	"github.com/themilho/product-catalog/pkg/validator"
)

// ErrorEnvelope is the body of every error response: {"error":{...}}.
// Successful responses are written bare so the wire format matches a plain
// REST collection (arrays and objects at the top level).
type ErrorEnvelope struct {
	Error *ErrorResponse `json:"error"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope for err. AppErrors keep their code,
// message and status; anything else is mapped through apperrors.HTTPStatus.
// 5xx errors are logged with the request-scoped logger when one is mounted.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}
	requestID := logger.CorrelationIDFromContext(r.Context())

	status := apperrors.HTTPStatus(err)
	resp := &ErrorResponse{RequestID: requestID}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		resp.Code, resp.Message = appErr.Code, appErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		resp.Code, resp.Message = apperrors.CodeNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		resp.Code, resp.Message = apperrors.CodeInvalidInput, err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		resp.Code, resp.Message = apperrors.CodeConflict, err.Error()
	default:
		resp.Code, resp.Message = apperrors.CodeInternal, "an internal error occurred"
	}

	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorEnvelope{Error: resp})
}

// WriteValidationError writes a 400 with field-level messages when err is a
// *validator.ValidationError, or a plain INVALID_INPUT envelope otherwise.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := logger.CorrelationIDFromContext(r.Context())

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: &ErrorResponse{
			Code:      apperrors.CodeValidation,
			Message:   "request validation failed",
			Fields:    valErr.Fields(),
			RequestID: requestID,
		}})
		return
	}

	WriteJSON(w, http.StatusBadRequest, ErrorEnvelope{Error: &ErrorResponse{
		Code:      apperrors.CodeInvalidInput,
		Message:   err.Error(),
		RequestID: requestID,
	}})
}
