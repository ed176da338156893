package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// SessionModel represents the database model for login sessions
type SessionModel struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (SessionModel) TableName() string {
	return "sessions"
}

// SessionRepositoryAdapter implements the SessionRepository port using GORM
type SessionRepositoryAdapter struct {
	db *gorm.DB
}

// NewSessionRepositoryAdapter creates a new session repository adapter
func NewSessionRepositoryAdapter(db *gorm.DB) ports.SessionRepository {
	return &SessionRepositoryAdapter{db: db}
}

// Save persists a session to the database
func (r *SessionRepositoryAdapter) Save(ctx context.Context, session *ports.SessionData) error {
	if session == nil {
		return errors.NewValidationError("session cannot be nil")
	}
	if session.Token == "" {
		return errors.NewValidationError("session token cannot be empty")
	}

	model := &SessionModel{
		ID:        session.ID,
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}

	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return errors.NewDatabaseError("failed to save session", result.Error)
	}

	session.ID = model.ID
	return nil
}

// FindByToken retrieves a session by token value. Expiry is checked by the caller.
func (r *SessionRepositoryAdapter) FindByToken(ctx context.Context, token string) (*ports.SessionData, error) {
	if token == "" {
		return nil, errors.NewValidationError("session token cannot be empty")
	}

	var model SessionModel
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, errors.NewDatabaseError("failed to find session", result.Error)
	}

	return &ports.SessionData{
		ID:        model.ID,
		Token:     model.Token,
		UserID:    model.UserID,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}, nil
}

// DeleteByToken removes a session. Deleting an unknown token is not an error.
func (r *SessionRepositoryAdapter) DeleteByToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewValidationError("session token cannot be empty")
	}

	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&SessionModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete session", result.Error)
	}

	return nil
}

// DeleteExpired removes sessions that expired at or before the given time
func (r *SessionRepositoryAdapter) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", before).Delete(&SessionModel{})
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to delete expired sessions", result.Error)
	}

	return result.RowsAffected, nil
}
