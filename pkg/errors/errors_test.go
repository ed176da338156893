package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("original error")
				return Wrap(DatabaseError, "database operation failed", cause)
			},
			expected: "DATABASE_ERROR: database operation failed (caused by: original error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := Wrap(ExternalAPIError, "API call failed", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, New(NotFoundError, "resource not found").Unwrap())
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "VALIDATION_ERROR"},
		{ErrorTypeNotFound, "NOT_FOUND_ERROR"},
		{ErrorTypeAlreadyExists, "ALREADY_EXISTS_ERROR"},
		{ErrorTypeToken, "TOKEN_ERROR"},
		{ErrorTypeUnauthorized, "UNAUTHORIZED_ERROR"},
		{ErrorTypeForbidden, "FORBIDDEN_ERROR"},
		{ErrorTypeDatabase, "DATABASE_ERROR"},
		{ErrorTypeExternalAPI, "EXTERNAL_API_ERROR"},
		{ErrorTypeConfiguration, "CONFIGURATION_ERROR"},
		{ErrorTypeUnknown, "UNKNOWN_ERROR"},
		{ErrorType(999), "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *AppError
		expected ErrorType
		cause    error
	}{
		{"Validation", NewValidationError("bad"), ValidationError, nil},
		{"NotFound", NewNotFoundError("missing"), NotFoundError, nil},
		{"AlreadyExists", NewAlreadyExistsError("dup"), AlreadyExistsError, nil},
		{"Token", NewTokenError("expired"), TokenError, nil},
		{"Unauthorized", NewUnauthorizedError("who"), UnauthorizedError, nil},
		{"Forbidden", NewForbiddenError("no"), ForbiddenError, nil},
		{"Database", NewDatabaseError("db", cause), DatabaseError, cause},
		{"ExternalAPI", NewExternalAPIError("api", cause), ExternalAPIError, cause},
		{"Configuration", NewConfigurationError("cfg", cause), ConfigurationError, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Type)
			assert.Equal(t, tt.cause, tt.err.Cause)
		})
	}
}

func TestTypeCheckers_FollowWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("load plant: %w", NewNotFoundError("plant not found"))

	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Equal(t, NotFoundError, TypeOf(wrapped))

	assert.True(t, IsForbiddenError(fmt.Errorf("x: %w", NewForbiddenError("no"))))
	assert.True(t, IsUnauthorizedError(NewUnauthorizedError("no")))
	assert.True(t, IsTokenError(NewTokenError("expired")))
	assert.True(t, IsAlreadyExistsError(NewAlreadyExistsError("dup")))
	assert.True(t, IsDatabaseError(NewDatabaseError("db", nil)))
	assert.True(t, IsExternalAPIError(NewExternalAPIError("api", nil)))
	assert.True(t, IsConfigurationError(NewConfigurationError("cfg", nil)))

	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
	assert.False(t, IsNotFoundError(nil))
}
