package mocks

import (
	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

// Logger is a mock of ports.Logger. Fields are passed as a single []ports.Field argument.
type Logger struct {
	mock.Mock
}

func (_m *Logger) Debug(msg string, fields ...ports.Field) {
	_m.Called(msg, fields)
}

func (_m *Logger) Info(msg string, fields ...ports.Field) {
	_m.Called(msg, fields)
}

func (_m *Logger) Warn(msg string, fields ...ports.Field) {
	_m.Called(msg, fields)
}

func (_m *Logger) Error(msg string, fields ...ports.Field) {
	_m.Called(msg, fields)
}

// AllowAll accepts any log call at any level
func (_m *Logger) AllowAll() *Logger {
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		_m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return _m
}

func NewLogger(t testingT) *Logger {
	m := &Logger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
