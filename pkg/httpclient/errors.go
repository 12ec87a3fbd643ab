package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/themilho/product-catalog/pkg/errors"
)

// ErrorBody covers the two error shapes a catalog API answers with: the
// enveloped {"error":{"code","message"}} form and a bare {"message"} object.
type ErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError carrying the response status. If the body matches one
// of the known error shapes, its code and message are preserved; otherwise the
// raw body (trimmed) becomes the message.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return &apperrors.AppError{
			Code:    statusCode(resp.StatusCode),
			Message: fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode),
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("read error body: %w", err),
		}
	}

	code, message := "", ""
	var body ErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		switch {
		case body.Error != nil:
			code, message = body.Error.Code, body.Error.Message
		case body.Message != "":
			message = body.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(bodyBytes))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return mapResponseError(resp.StatusCode, code, message, serviceName)
}

// mapResponseError translates an HTTP status code and error code into an
// AppError that preserves the error semantics.
func mapResponseError(status int, code, message, serviceName string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", serviceName, message)
	if code == "" {
		code = statusCode(status)
	}

	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = apperrors.ErrNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		sentinel = apperrors.ErrInvalidInput
	case status == http.StatusConflict:
		sentinel = apperrors.ErrConflict
	case status == http.StatusServiceUnavailable:
		sentinel = apperrors.ErrServiceUnavail
	case status >= 500:
		sentinel = apperrors.ErrInternal
	}

	return &apperrors.AppError{
		Code:    code,
		Message: qualifiedMsg,
		Status:  status,
		Err:     sentinel,
	}
}

func statusCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return apperrors.CodeNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.CodeInvalidInput
	case status == http.StatusConflict:
		return apperrors.CodeConflict
	case status == http.StatusServiceUnavailable:
		return apperrors.CodeUnavailable
	case status >= 500:
		return apperrors.CodeInternal
	default:
		return fmt.Sprintf("HTTP_%d", status)
	}
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
