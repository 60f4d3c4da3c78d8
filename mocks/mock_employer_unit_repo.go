package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"folharh/internal/domain"
)

// MockEmployerUnitRepo is a mock implementation of port.EmployerUnitRepository.
type MockEmployerUnitRepo struct {
	mock.Mock
}

func (m *MockEmployerUnitRepo) Create(ctx context.Context, unit *domain.EmployerUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockEmployerUnitRepo) GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerUnit), args.Error(1)
}

func (m *MockEmployerUnitRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.EmployerUnit), args.Int(1), args.Error(2)
}
