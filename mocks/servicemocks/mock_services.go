package servicemocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfworker/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Extract(ctx context.Context, input service.ExtractInput) (*service.ExtractOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractOutput), args.Error(1)
}

// MockTextLayerService is a mock implementation of service.TextLayerService.
type MockTextLayerService struct {
	mock.Mock
}

func (m *MockTextLayerService) Detect(ctx context.Context, data []byte, charThreshold int) (*service.TextLayerReport, map[string]string, error) {
	args := m.Called(ctx, data, charThreshold)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TextLayerReport), args.Get(1).(map[string]string), args.Error(2)
}
