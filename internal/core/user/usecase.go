package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
	"cropcast.app/pkg/validation"
)

// unknownAccountHash is compared against on logins for unknown emails, so they
// cost a bcrypt comparison like a wrong password does.
const unknownAccountHash = "$2b$10$ltYriBdJenIJI4sDz0GwF.87mUpxa3voIX9aX4GOD1eMCr8fPq8Zq"

type UseCase struct {
	userRepo    ports.UserRepository
	sessionRepo ports.SessionRepository
	hasher      ports.PasswordHasher
	config      ports.ConfigProvider
	logger      ports.Logger
	clock       clockwork.Clock
}

type UseCaseDependencies struct {
	UserRepo    ports.UserRepository
	SessionRepo ports.SessionRepository
	Hasher      ports.PasswordHasher
	Config      ports.ConfigProvider
	Logger      ports.Logger
	// Clock defaults to the real clock when nil.
	Clock clockwork.Clock
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Location string
}

type LoginParams struct {
	Email    string
	Password string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.UserRepo == nil {
		return nil, errors.NewValidationError("user repository is required")
	}
	if deps.SessionRepo == nil {
		return nil, errors.NewValidationError("session repository is required")
	}
	if deps.Hasher == nil {
		return nil, errors.NewValidationError("password hasher is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &UseCase{
		userRepo:    deps.UserRepo,
		sessionRepo: deps.SessionRepo,
		hasher:      deps.Hasher,
		config:      deps.Config,
		logger:      deps.Logger,
		clock:       clock,
	}, nil
}

func (uc *UseCase) validateRegisterParams(params RegisterParams) error {
	if !validation.IsNotEmpty(params.Name) {
		return errors.NewValidationError("name is required")
	}
	if !validation.IsNotEmpty(params.Email) {
		return errors.NewValidationError("email is required")
	}
	if !validation.IsValidEmail(params.Email) {
		return errors.NewValidationError("invalid email format")
	}
	if len(params.Password) < minPasswordLength {
		return errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !validation.IsNotEmpty(params.Location) {
		return errors.NewValidationError("location is required")
	}
	return nil
}

func (uc *UseCase) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := uc.validateRegisterParams(params); err != nil {
		return nil, err
	}

	email := validation.NormalizeEmail(params.Email)
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.NewAlreadyExistsError("email is already registered")
	}

	hash, err := uc.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.clock.Now()
	data := &ports.UserData{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: hash,
		Location:     strings.TrimSpace(params.Location),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	uc.logger.Info("User registered", ports.F("userID", data.ID))
	return fromData(data), nil
}

func (uc *UseCase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if !validation.IsNotEmpty(params.Email) || params.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	data, err := uc.userRepo.FindByEmail(ctx, validation.NormalizeEmail(params.Email))
	if err != nil {
		if errors.IsNotFoundError(err) {
			_ = uc.hasher.Compare(unknownAccountHash, params.Password)
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := uc.hasher.Compare(data.PasswordHash, params.Password); err != nil {
		uc.logger.Debug("Password mismatch", ports.F("userID", data.ID))
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	session := NewSession(data.ID, uc.clock.Now(), uc.config.GetAuthConfig().SessionTTL)
	if err := uc.sessionRepo.Save(ctx, &ports.SessionData{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	uc.logger.Info("User logged in", ports.F("userID", data.ID))
	return &LoginResult{User: fromData(data), Session: session}, nil
}

// Authenticate resolves a bearer token to its user
func (uc *UseCase) Authenticate(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.NewTokenError("session token is required")
	}

	data, err := uc.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenError("invalid session")
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	session := &Session{Token: data.Token, UserID: data.UserID, ExpiresAt: data.ExpiresAt, CreatedAt: data.CreatedAt}
	if session.IsExpiredAt(uc.clock.Now()) {
		return nil, errors.NewTokenError("session expired")
	}

	u, err := uc.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewTokenError("invalid session")
		}
		return nil, fmt.Errorf("find session user: %w", err)
	}
	return fromData(u), nil
}

func (uc *UseCase) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.NewTokenError("session token is required")
	}
	if err := uc.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes every session that expired before now
func (uc *UseCase) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := uc.sessionRepo.DeleteExpired(ctx, uc.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	uc.logger.Info("Expired sessions cleaned up", ports.F("deleted", deleted))
	return deleted, nil
}

func fromData(d *ports.UserData) *User {
	return &User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Location:     d.Location,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
