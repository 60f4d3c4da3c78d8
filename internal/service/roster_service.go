package service

import (
	"context"

	"github.com/google/uuid"

	"folharh/internal/domain"
	"folharh/internal/port"
)

// RosterService exposes the tenant-scoped read surface over employer units
// and the employees the import pipeline maintains.
type RosterService interface {
	ListUnits(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error)
	GetUnit(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error)
	ListEmployees(ctx context.Context, tenantID, unitID uuid.UUID, offset, limit int) ([]domain.Employee, int, error)
	GetEmployee(ctx context.Context, tenantID, empID uuid.UUID) (*domain.Employee, error)
}

type rosterService struct {
	units     port.EmployerUnitRepository
	employees port.EmployeeRepository
}

// NewRosterService creates a new RosterService implementation.
func NewRosterService(units port.EmployerUnitRepository, employees port.EmployeeRepository) RosterService {
	return &rosterService{units: units, employees: employees}
}

func (s *rosterService) ListUnits(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error) {
	return s.units.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *rosterService) GetUnit(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error) {
	return s.units.GetByID(ctx, tenantID, unitID)
}

func (s *rosterService) ListEmployees(ctx context.Context, tenantID, unitID uuid.UUID, offset, limit int) ([]domain.Employee, int, error) {
	if _, err := s.units.GetByID(ctx, tenantID, unitID); err != nil {
		return nil, 0, err
	}
	return s.employees.ListByUnit(ctx, tenantID, unitID, offset, limit)
}

func (s *rosterService) GetEmployee(ctx context.Context, tenantID, empID uuid.UUID) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, tenantID, empID)
}
