package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/themilho/product-catalog/pkg/errors"
	"github.com/themilho/product-catalog/pkg/logger"
	"github.com/themilho/product-catalog/pkg/validator"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return *env.Error
}

func TestWriteJSON_BareBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, []map[string]int{{"id": 1}})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/7", nil)
	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-7"))

	WriteError(rec, req, apperrors.NotFound("product", "7"), logger.Discard())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, apperrors.CodeNotFound, body.Code)
	assert.Equal(t, "product with id 7 not found", body.Message)
	assert.Equal(t, "corr-7", body.RequestID)
}

func TestWriteError_WrappedSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("lookup: %w", apperrors.ErrNotFound), http.StatusNotFound, apperrors.CodeNotFound},
		{fmt.Errorf("bad id: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, apperrors.CodeInvalidInput},
		{fmt.Errorf("dup: %w", apperrors.ErrConflict), http.StatusConflict, apperrors.CodeConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError, apperrors.CodeInternal},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, logger.Discard())

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.code, decodeEnvelope(t, rec).Code)
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("test", "info", &buf)
	rec := httptest.NewRecorder()

	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret detail"), l)

	body := decodeEnvelope(t, rec)
	assert.NotContains(t, body.Message, "secret")
	assert.Contains(t, buf.String(), "secret detail")
}

type sample struct {
	Name string `json:"name" validate:"required"`
}

func TestWriteValidationError_Fields(t *testing.T) {
	err := validator.Validate(sample{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, apperrors.CodeValidation, body.Code)
	assert.Equal(t, "is required", body.Fields["name"])
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), errors.New("decode request body: EOF"))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, apperrors.CodeInvalidInput, body.Code)
	assert.Contains(t, body.Message, "EOF")
}
