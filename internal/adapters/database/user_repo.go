package database

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// UserModel represents the database model for accounts
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Location     string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// UserRepositoryAdapter implements the UserRepository port using GORM
type UserRepositoryAdapter struct {
	db *gorm.DB
}

// NewUserRepositoryAdapter creates a new user repository adapter
func NewUserRepositoryAdapter(db *gorm.DB) ports.UserRepository {
	return &UserRepositoryAdapter{db: db}
}

// Save persists a user to the database
func (r *UserRepositoryAdapter) Save(ctx context.Context, user *ports.UserData) error {
	if user == nil {
		return errors.NewValidationError("user cannot be nil")
	}

	model := &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Location:     user.Location,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	var result *gorm.DB
	if user.ID == 0 {
		result = r.db.WithContext(ctx).Create(model)
		user.ID = model.ID
	} else {
		result = r.db.WithContext(ctx).Save(model)
	}

	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.NewAlreadyExistsError("email is already registered")
		}
		return errors.NewDatabaseError("failed to save user", result.Error)
	}

	return nil
}

// FindByID retrieves a user by its ID
func (r *UserRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("user ID cannot be zero")
	}

	var model UserModel
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, errors.NewDatabaseError("failed to find user by ID", result.Error)
	}

	return userModelToData(&model), nil
}

// FindByEmail retrieves a user by normalized email
func (r *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	if email == "" {
		return nil, errors.NewValidationError("email cannot be empty")
	}

	var model UserModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("user not found")
		}
		return nil, errors.NewDatabaseError("failed to find user by email", result.Error)
	}

	return userModelToData(&model), nil
}

func userModelToData(model *UserModel) *ports.UserData {
	return &ports.UserData{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Location:     model.Location,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
