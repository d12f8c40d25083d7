// Package mocks holds testify mocks for the service and handler interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// TestingT is what the constructors need from *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// result returns the i-th return value as T, or T's zero value when the
// expectation returned nil.
func result[T any](args mock.Arguments, i int) T {
	var zero T
	if v, ok := args.Get(i).(T); ok {
		return v
	}
	return zero
}

func register(t TestingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
