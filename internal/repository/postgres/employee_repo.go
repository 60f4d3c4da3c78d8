package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"folharh/internal/domain"
	"folharh/internal/port"
)

type employeeRepo struct {
	db *sqlx.DB
}

// NewEmployeeRepo creates a new PostgreSQL-backed EmployeeRepository.
func NewEmployeeRepo(db *sqlx.DB) port.EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *domain.Employee) error {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	query := `INSERT INTO employees
		(id, tenant_id, employer_unit_id, name, cpf, birth_date, job_title, salary,
		 email, phone, marital_status, admission_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		emp.ID, emp.TenantID, emp.EmployerUnitID, emp.Name, emp.CPF, emp.BirthDate,
		emp.JobTitle, emp.Salary, emp.Email, emp.Phone, emp.MaritalStatus,
		emp.AdmissionDate, emp.CreatedAt, emp.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "cpf") {
			return domain.ErrDuplicateCPF
		}
		return fmt.Errorf("employeeRepo.Create: %w", err)
	}
	return nil
}

func (r *employeeRepo) Update(ctx context.Context, emp *domain.Employee) error {
	emp.UpdatedAt = time.Now().UTC()

	query := `UPDATE employees SET
		name = $1, birth_date = $2, job_title = $3, salary = $4, email = $5,
		phone = $6, marital_status = $7, admission_date = $8, updated_at = $9
		WHERE id = $10 AND tenant_id = $11`

	result, err := r.db.ExecContext(ctx, query,
		emp.Name, emp.BirthDate, emp.JobTitle, emp.Salary, emp.Email,
		emp.Phone, emp.MaritalStatus, emp.AdmissionDate, emp.UpdatedAt,
		emp.ID, emp.TenantID)
	if err != nil {
		return fmt.Errorf("employeeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *employeeRepo) GetByID(ctx context.Context, tenantID, empID uuid.UUID) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.GetContext(ctx, &emp,
		"SELECT * FROM employees WHERE id = $1 AND tenant_id = $2", empID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("employeeRepo.GetByID: %w", err)
	}
	return &emp, nil
}

// GetByCPF looks up one employee by digits-only CPF within an employer unit.
// Returns the most recently created row when the unit holds intentional
// duplicates created under the create_anyway policy.
func (r *employeeRepo) GetByCPF(ctx context.Context, tenantID, unitID uuid.UUID, cpf string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.GetContext(ctx, &emp,
		`SELECT * FROM employees
		 WHERE tenant_id = $1 AND employer_unit_id = $2 AND cpf = $3
		 ORDER BY created_at DESC LIMIT 1`,
		tenantID, unitID, cpf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("employeeRepo.GetByCPF: %w", err)
	}
	return &emp, nil
}

// MapByCPF loads the unit's full roster keyed by CPF. When a CPF appears more
// than once the earliest-created row wins, so repeated imports keep updating
// the original record.
func (r *employeeRepo) MapByCPF(ctx context.Context, tenantID, unitID uuid.UUID) (map[string]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.SelectContext(ctx, &employees,
		`SELECT * FROM employees
		 WHERE tenant_id = $1 AND employer_unit_id = $2
		 ORDER BY created_at ASC`,
		tenantID, unitID)
	if err != nil {
		return nil, fmt.Errorf("employeeRepo.MapByCPF: %w", err)
	}

	byCPF := make(map[string]domain.Employee, len(employees))
	for _, emp := range employees {
		if _, ok := byCPF[emp.CPF]; !ok {
			byCPF[emp.CPF] = emp
		}
	}
	return byCPF, nil
}

func (r *employeeRepo) ListByUnit(ctx context.Context, tenantID, unitID uuid.UUID, offset, limit int) ([]domain.Employee, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM employees WHERE tenant_id = $1 AND employer_unit_id = $2",
		tenantID, unitID)
	if err != nil {
		return nil, 0, fmt.Errorf("employeeRepo.ListByUnit count: %w", err)
	}

	var employees []domain.Employee
	err = r.db.SelectContext(ctx, &employees,
		`SELECT * FROM employees
		 WHERE tenant_id = $1 AND employer_unit_id = $2
		 ORDER BY name ASC LIMIT $3 OFFSET $4`,
		tenantID, unitID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("employeeRepo.ListByUnit: %w", err)
	}
	return employees, total, nil
}
