package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"folharh/internal/importer"
	"folharh/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) CreateSession(ctx context.Context, input service.SessionUploadInput) (*importer.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Session), args.Error(1)
}

func (m *MockImportService) GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Session), args.Error(1)
}

func (m *MockImportService) SetMapping(ctx context.Context, tenantID, sessionID uuid.UUID, mapping importer.ColumnMapping) (*importer.Session, error) {
	args := m.Called(ctx, tenantID, sessionID, mapping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Session), args.Error(1)
}

func (m *MockImportService) Preview(ctx context.Context, tenantID, sessionID uuid.UUID) (*service.PreviewPage, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PreviewPage), args.Error(1)
}

func (m *MockImportService) Process(ctx context.Context, tenantID, sessionID uuid.UUID, opts importer.ImportOptions) (*importer.ImportResults, error) {
	args := m.Called(ctx, tenantID, sessionID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.ImportResults), args.Error(1)
}

func (m *MockImportService) Results(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.ImportResults, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.ImportResults), args.Error(1)
}

func (m *MockImportService) ErrorReportCSV(ctx context.Context, tenantID, sessionID uuid.UUID) (string, []byte, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *MockImportService) Reset(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error) {
	args := m.Called(ctx, tenantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Session), args.Error(1)
}

func (m *MockImportService) RestoreSession(ctx context.Context, tenantID, fileID uuid.UUID) (*importer.Session, error) {
	args := m.Called(ctx, tenantID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.Session), args.Error(1)
}

func (m *MockImportService) UploadURL(ctx context.Context, tenantID, sessionID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, sessionID)
	return args.String(0), args.Error(1)
}
