package mocks

import (
	"github.com/stretchr/testify/mock"

	"pdfworker/internal/port"
)

// MockEngine is a mock implementation of port.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEngine) Open(data []byte) (port.Document, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.Document), args.Error(1)
}

// MockDocument is a mock implementation of port.Document.
type MockDocument struct {
	mock.Mock
}

func (m *MockDocument) PageCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockDocument) Page(n int, withImages bool) (*port.PageContent, error) {
	args := m.Called(n, withImages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PageContent), args.Error(1)
}

func (m *MockDocument) PlainText(n int) (string, error) {
	args := m.Called(n)
	return args.String(0), args.Error(1)
}

func (m *MockDocument) Close() error {
	args := m.Called()
	return args.Error(0)
}
