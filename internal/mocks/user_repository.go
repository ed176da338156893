package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) Save(ctx context.Context, user *ports.UserData) error {
	return _m.Called(ctx, user).Error(0)
}

func (_m *UserRepository) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	ret := _m.Called(ctx, id)
	r0, _ := ret.Get(0).(*ports.UserData)
	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	ret := _m.Called(ctx, email)
	r0, _ := ret.Get(0).(*ports.UserData)
	return r0, ret.Error(1)
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SessionRepository struct {
	mock.Mock
}

func (_m *SessionRepository) Save(ctx context.Context, session *ports.SessionData) error {
	return _m.Called(ctx, session).Error(0)
}

func (_m *SessionRepository) FindByToken(ctx context.Context, token string) (*ports.SessionData, error) {
	ret := _m.Called(ctx, token)
	r0, _ := ret.Get(0).(*ports.SessionData)
	return r0, ret.Error(1)
}

func (_m *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return _m.Called(ctx, token).Error(0)
}

func (_m *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ret := _m.Called(ctx, before)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (_m *PasswordHasher) Compare(hash, password string) error {
	return _m.Called(hash, password).Error(0)
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
