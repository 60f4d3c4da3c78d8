package port

import (
	"context"

	"github.com/google/uuid"

	"folharh/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// EmployerUnitRepository defines the contract for employer unit persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type EmployerUnitRepository interface {
	Create(ctx context.Context, unit *domain.EmployerUnit) error
	GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error)
}

// EmployeeRepository defines the contract for roster persistence. The import
// pipeline reads the unit's roster as a CPF-keyed snapshot, re-checks a single
// CPF just before create, and writes creates/updates one row at a time.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, tenantID, empID uuid.UUID) (*domain.Employee, error)
	GetByCPF(ctx context.Context, tenantID, unitID uuid.UUID, cpf string) (*domain.Employee, error)
	MapByCPF(ctx context.Context, tenantID, unitID uuid.UUID) (map[string]domain.Employee, error)
	ListByUnit(ctx context.Context, tenantID, unitID uuid.UUID, offset, limit int) ([]domain.Employee, int, error)
}

// FileMetaRepository defines the contract for uploaded file metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.FileMeta, error)
	UpdateStatus(ctx context.Context, tenantID, fileID uuid.UUID, status domain.FileStatus) error
}
