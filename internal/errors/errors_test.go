package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpulse/internal/shared/testutil"
)

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewParsingError("bad input", cause)

	assert.Equal(t, "[PARSING] bad input: underlying", err.Error())
	assert.Equal(t, cause, err.Unwrap())

	bare := NewAppValidationError("nope")
	assert.Equal(t, "[VALIDATION] nope", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestIsType(t *testing.T) {
	parseErr := NewParsingError("bad", nil)

	assert.True(t, IsType(parseErr, ErrTypeParsing))
	assert.False(t, IsType(parseErr, ErrTypeStorage))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeParsing))

	// Wrapped application errors still match.
	wrapped := fmt.Errorf("context: %w", parseErr)
	assert.True(t, IsType(wrapped, ErrTypeParsing))
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"parsing", NewParsingError("bad", nil), http.StatusUnprocessableEntity, "PARSE_FAILED"},
		{"empty dataset", NewEmptyDatasetError("empty"), http.StatusUnprocessableEntity, "EMPTY_DATASET"},
		{"validation", NewAppValidationError("bad name"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"not found", NewNotFoundError("analysis"), http.StatusNotFound, "NOT_FOUND"},
		{"storage", NewStorageError("disk", nil), http.StatusInternalServerError, "FILESYSTEM_ERROR"},
		{"config falls back to 500", NewConfigError("bad config", nil), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromAppError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestHandleErrorRendersEnvelope(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/x", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, ErrAnalysisNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ANALYSIS_NOT_FOUND", resp.Error.ErrorCode)

	// Client errors log at warn, not error.
	assert.True(t, logs.HasMessage("request rejected"))
}

func TestHandleErrorUnknownErrorIs500(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, fmt.Errorf("mystery failure"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, logs.HasMessage("request failed"))
}
