package user

import (
	"time"

	"github.com/google/uuid"
)

const minPasswordLength = 8

// User is a registered grower account
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an opaque bearer token bound to a user
type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewSession creates a session for userID that expires ttl after now
func NewSession(userID uint, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpiredAt reports whether the session is no longer valid at now
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginResult is returned on successful credential authentication
type LoginResult struct {
	User    *User
	Session *Session
}
