package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/themilho/product-catalog/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_Enveloped(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"product 9 not found"}}`)
	err := ParseResponseError(resp, "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Equal(t, "catalog: product 9 not found", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestParseResponseError_BareMessage(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest, `{"message":"name is required"}`)
	err := ParseResponseError(resp, "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "name is required")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParseResponseError_PlainText(t *testing.T) {
	resp := makeResponse(http.StatusInternalServerError, "  boom \n")
	err := ParseResponseError(resp, "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "catalog: boom", appErr.Message)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestParseResponseError_EmptyBody(t *testing.T) {
	resp := makeResponse(http.StatusServiceUnavailable, "")
	err := ParseResponseError(resp, "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "catalog: Service Unavailable", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestParseResponseError_Conflict(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusConflict, `{"message":"exists"}`), "catalog")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestParseResponseError_UnmappedStatus(t *testing.T) {
	err := ParseResponseError(makeResponse(http.StatusTeapot, ""), "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "HTTP_418", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(301))
	assert.False(t, IsSuccess(500))
}
