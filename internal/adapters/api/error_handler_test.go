package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/mocks"
	"cropcast.app/pkg/errors"
)

func newContextWithHeader(key, value string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		c.Request.Header.Set(key, value)
	}
	return c, w
}

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Validation", errors.NewValidationError("validation failed"), http.StatusBadRequest, "validation failed"},
		{"NotFound", errors.NewNotFoundError("plant not found"), http.StatusNotFound, "plant not found"},
		{"AlreadyExists", errors.NewAlreadyExistsError("email is already registered"), http.StatusConflict, "email is already registered"},
		{"Token", errors.NewTokenError("session expired"), http.StatusUnauthorized, "session expired"},
		{"Unauthorized", errors.NewUnauthorizedError("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"Forbidden", errors.NewForbiddenError("plant is private"), http.StatusForbidden, "plant is private"},
		{"ExternalAPI", errors.NewExternalAPIError("forecast unavailable", nil), http.StatusServiceUnavailable, "External service unavailable"},
		{"Database", errors.NewDatabaseError("connection refused", nil), http.StatusInternalServerError, "Internal server error"},
		{"Configuration", errors.NewConfigurationError("missing key", nil), http.StatusInternalServerError, "Internal server error"},
		{"Wrapped", fmt.Errorf("load plant: %w", errors.NewNotFoundError("plant not found")), http.StatusNotFound, "plant not found"},
		{"Plain", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	server := &HTTPServerAdapter{logger: mocks.NewLogger(t).AllowAll()}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContextWithHeader("", "")
			server.handleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantBody, response.Error)
		})
	}
}

func TestBindingError_PlainError(t *testing.T) {
	err := bindingError(fmt.Errorf("unexpected EOF"))
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "unexpected EOF")
}
