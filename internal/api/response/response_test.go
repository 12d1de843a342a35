package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gocatalog/internal/api/response"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

func TestError_ValidationCarriesDetailsAndTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req = req.WithContext(response.WithTraceID(req.Context(), "abc123"))
	rec := httptest.NewRecorder()

	response.Error(rec, req, logger.Nop(), apperror.NewValidationError("Title is required."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrorResponse{
		ErrorCode: "VALIDATION_ERROR",
		Message:   "Validation failed",
		Details:   []string{"Title is required."},
		TraceID:   "abc123",
	}, body)
}

func TestError_InternalIsGenericAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, logger.New(zap.New(core)), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred.")
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
