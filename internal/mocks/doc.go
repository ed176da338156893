// Package mocks holds testify mocks for the interfaces in internal/ports.
//
// Each constructor registers AssertExpectations as a test cleanup, so a test
// only needs to declare expectations with On(...).
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}
