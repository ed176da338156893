package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/core/user"
	"cropcast.app/pkg/errors"
)

func TestAuthHandler_Register(t *testing.T) {
	body := RegisterRequest{Name: "Sari", Email: "sari@example.com", Password: "rahasia123", Location: "Bogor"}

	t.Run("Created", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("Register", mock.Anything, user.RegisterParams{
			Name: "Sari", Email: "sari@example.com", Password: "rahasia123", Location: "Bogor",
		}).Return(&user.User{ID: 7, Name: "Sari", Email: "sari@example.com", PasswordHash: "$2a$10$x", Location: "Bogor"}, nil)

		w := ts.do(http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "$2a$")

		var response UserResponse
		decode(t, w, &response)
		assert.Equal(t, uint(7), response.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("Register", mock.Anything, mock.Anything).Return(nil, errors.NewAlreadyExistsError("email is already registered"))

		w := ts.do(http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		ts := newTestServer(t)

		bad := body
		bad.Email = "not-an-email"
		bad.Password = "short"

		w := ts.do(http.MethodPost, "/api/auth/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		decode(t, w, &response)
		assert.Contains(t, response.Error, "email must be a valid email address")
		assert.Contains(t, response.Error, "password must be at least 8")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t)
		expires := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		ts.auth.On("Login", mock.Anything, user.LoginParams{Email: "sari@example.com", Password: "rahasia123"}).
			Return(&user.LoginResult{User: grower, Session: &user.Session{Token: "tok", UserID: grower.ID, ExpiresAt: expires}}, nil)

		w := ts.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "sari@example.com", Password: "rahasia123"}, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response SessionResponse
		decode(t, w, &response)
		assert.Equal(t, "tok", response.Token)
		assert.True(t, expires.Equal(response.ExpiresAt))
		assert.Equal(t, "Sari", response.User.Name)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("Login", mock.Anything, mock.Anything).Return(nil, errors.NewUnauthorizedError("invalid credentials"))

		w := ts.do(http.MethodPost, "/api/auth/login", LoginRequest{Email: "sari@example.com", Password: "wrong-pass"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response ErrorResponse
		decode(t, w, &response)
		assert.Equal(t, "invalid credentials", response.Error)
	})
}

func TestAuthHandler_Session(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn("tok")

	w := ts.do(http.MethodGet, "/api/auth/session", nil, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"sari@example.com"`)

	w = ts.do(http.MethodGet, "/api/auth/session", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn("tok")
	ts.auth.On("Logout", mock.Anything, "tok").Return(nil)

	w := ts.do(http.MethodPost, "/api/auth/logout", nil, "tok")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer ", ""},
		{"Basic abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			c, _ := newContextWithHeader("Authorization", tt.header)
			assert.Equal(t, tt.want, extractToken(c))
		})
	}
}
