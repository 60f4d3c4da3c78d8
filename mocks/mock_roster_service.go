package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"folharh/internal/domain"
)

// MockRosterService is a mock implementation of service.RosterService.
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) ListUnits(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmployerUnit), args.Int(1), args.Error(2)
}

func (m *MockRosterService) GetUnit(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerUnit), args.Error(1)
}

func (m *MockRosterService) ListEmployees(ctx context.Context, tenantID, unitID uuid.UUID, offset, limit int) ([]domain.Employee, int, error) {
	args := m.Called(ctx, tenantID, unitID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Employee), args.Int(1), args.Error(2)
}

func (m *MockRosterService) GetEmployee(ctx context.Context, tenantID, empID uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, tenantID, empID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
