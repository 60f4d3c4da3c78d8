package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"folharh/internal/domain"
	"folharh/internal/port"
)

type employerUnitRepo struct {
	db *sqlx.DB
}

// NewEmployerUnitRepo creates a new PostgreSQL-backed EmployerUnitRepository.
func NewEmployerUnitRepo(db *sqlx.DB) port.EmployerUnitRepository {
	return &employerUnitRepo{db: db}
}

func (r *employerUnitRepo) Create(ctx context.Context, unit *domain.EmployerUnit) error {
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now

	query := `INSERT INTO employer_units
		(id, tenant_id, cnpj, legal_name, trade_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		unit.ID, unit.TenantID, unit.CNPJ, unit.LegalName, unit.TradeName,
		unit.IsActive, unit.CreatedAt, unit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("employerUnitRepo.Create: %w", err)
	}
	return nil
}

func (r *employerUnitRepo) GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*domain.EmployerUnit, error) {
	var unit domain.EmployerUnit
	err := r.db.GetContext(ctx, &unit,
		"SELECT * FROM employer_units WHERE id = $1 AND tenant_id = $2", unitID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("employerUnitRepo.GetByID: %w", err)
	}
	return &unit, nil
}

func (r *employerUnitRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.EmployerUnit, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM employer_units WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("employerUnitRepo.ListByTenant count: %w", err)
	}

	var units []domain.EmployerUnit
	err = r.db.SelectContext(ctx, &units,
		`SELECT * FROM employer_units WHERE tenant_id = $1
		 ORDER BY legal_name ASC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("employerUnitRepo.ListByTenant: %w", err)
	}
	return units, total, nil
}
