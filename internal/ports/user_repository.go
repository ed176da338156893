package ports

import (
	"context"
	"time"
)

// UserData represents account data for persistence
type UserData struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionData represents a login session for persistence
type SessionData struct {
	ID        uint
	Token     string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the contract for account persistence
type UserRepository interface {
	Save(ctx context.Context, user *UserData) error
	FindByID(ctx context.Context, id uint) (*UserData, error)
	FindByEmail(ctx context.Context, email string) (*UserData, error)
}

// SessionRepository defines the contract for session persistence
type SessionRepository interface {
	Save(ctx context.Context, session *SessionData) error
	FindByToken(ctx context.Context, token string) (*SessionData, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
