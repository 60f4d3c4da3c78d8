package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folharh/internal/domain"
	"folharh/internal/importer"
)

// fakeEmployeeRepo is an in-memory roster store for exercising full runs.
type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*domain.Employee
	failCPF   string // Create/Update against this CPF fails
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]*domain.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	if emp.CPF == f.failCPF {
		return errors.New("store unavailable")
	}
	emp.ID = uuid.New()
	cp := *emp
	f.employees[emp.ID] = &cp
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	if emp.CPF == f.failCPF {
		return errors.New("store unavailable")
	}
	if _, ok := f.employees[emp.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *emp
	f.employees[emp.ID] = &cp
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _, empID uuid.UUID) (*domain.Employee, error) {
	if emp, ok := f.employees[empID]; ok {
		cp := *emp
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByCPF(_ context.Context, _, unitID uuid.UUID, cpf string) (*domain.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployerUnitID == unitID && emp.CPF == cpf {
			cp := *emp
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEmployeeRepo) MapByCPF(_ context.Context, _, unitID uuid.UUID) (map[string]domain.Employee, error) {
	out := make(map[string]domain.Employee)
	for _, emp := range f.employees {
		if emp.EmployerUnitID == unitID {
			out[emp.CPF] = *emp
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListByUnit(_ context.Context, _, unitID uuid.UUID, _, _ int) ([]domain.Employee, int, error) {
	var out []domain.Employee
	for _, emp := range f.employees {
		if emp.EmployerUnitID == unitID {
			out = append(out, *emp)
		}
	}
	return out, len(out), nil
}

func (f *fakeEmployeeRepo) count() int { return len(f.employees) }

var testMapping = importer.ColumnMapping{
	"Nome":       importer.FieldName,
	"CPF":        importer.FieldCPF,
	"Nascimento": importer.FieldBirthDate,
	"Cargo":      importer.FieldJobTitle,
	"Salário":    importer.FieldSalary,
}

func testTable(rows ...[]string) domain.RawTable {
	return domain.RawTable{
		Headers: []string{"Nome", "CPF", "Nascimento", "Cargo", "Salário"},
		Rows:    rows,
	}
}

func newTestRunner(repo *fakeEmployeeRepo) *importer.Runner {
	return importer.NewRunner(repo, importer.RunnerConfig{BatchSize: 2})
}

func TestRun_EndToEndScenario(t *testing.T) {
	// row 1 valid new, row 2 collides with a persisted employee under the
	// ignore policy, row 3 has an invalid CPF with ignore_errors off
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	require.NoError(t, repo.Create(context.Background(), &domain.Employee{
		TenantID: tenantID, EmployerUnitID: unitID,
		Name: "Maria Souza", CPF: "52998224725", JobTitle: "Analista", Salary: 3000,
	}))

	table := testTable(
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"},
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"},
		[]string{"Pedro Reis", "111.111.111-11", "02/02/1992", "Dev", "4.000,00"},
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{DuplicateHandling: domain.DuplicateIgnore})
	require.NoError(t, err)

	assert.Equal(t, 3, results.TotalRows)
	assert.Equal(t, 1, results.SuccessfulImports)
	assert.Equal(t, 1, results.DuplicatesHandled)
	assert.Equal(t, 1, results.FailedImports)
	assert.Equal(t, 0, results.IgnoredErrors)
	assert.Positive(t, results.ProcessingTime)

	require.Len(t, results.DetailedResults.Success, 1)
	assert.Equal(t, 2, results.DetailedResults.Success[0].Row)
	assert.Equal(t, importer.ActionCreated, results.DetailedResults.Success[0].Action)

	require.Len(t, results.DetailedResults.Duplicates, 1)
	assert.Equal(t, importer.ActionIgnored, results.DetailedResults.Duplicates[0].Action)

	require.Len(t, results.DetailedResults.Errors, 1)
	assert.Equal(t, 4, results.DetailedResults.Errors[0].Row)
	assert.NotEmpty(t, results.DetailedResults.Errors[0].Messages)
	assert.NotEmpty(t, results.DetailedResults.Errors[0].Raw)

	// duplicate under ignore leaves the existing record untouched
	assert.Equal(t, 2, repo.count())
}

func TestRun_UpdateIsIdempotent(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"},
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"},
	)
	opts := importer.ImportOptions{DuplicateHandling: domain.DuplicateUpdate}
	runner := newTestRunner(repo)

	first, err := runner.Run(context.Background(), tenantID, unitID, table, testMapping, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, first.SuccessfulImports)
	assert.Equal(t, 0, first.DuplicatesHandled)
	assert.Equal(t, 2, repo.count())

	second, err := runner.Run(context.Background(), tenantID, unitID, table, testMapping, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SuccessfulImports)
	assert.Equal(t, 2, second.UpdatedRecords)
	assert.Equal(t, 2, second.DuplicatesHandled)
	require.Len(t, second.DetailedResults.Duplicates, 2)
	for _, d := range second.DetailedResults.Duplicates {
		assert.Equal(t, importer.ActionUpdated, d.Action)
	}

	// same end state: still two records with the same field values
	assert.Equal(t, 2, repo.count())
	emp, err := repo.GetByCPF(context.Background(), tenantID, unitID, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", emp.Name)
	assert.InDelta(t, 3500.0, emp.Salary, 1e-9)
}

func TestRun_CreateAnywayIsNotIdempotent(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"},
	)
	opts := importer.ImportOptions{DuplicateHandling: domain.DuplicateCreateAnyway}
	runner := newTestRunner(repo)

	_, err := runner.Run(context.Background(), tenantID, unitID, table, testMapping, opts)
	require.NoError(t, err)
	countAfterFirst := repo.count()

	second, err := runner.Run(context.Background(), tenantID, unitID, table, testMapping, opts)
	require.NoError(t, err)
	assert.Greater(t, repo.count(), countAfterFirst)
	assert.Equal(t, 1, second.DuplicatesHandled)
	require.Len(t, second.DetailedResults.Duplicates, 1)
	assert.Equal(t, importer.ActionCreatedAnyway, second.DetailedResults.Duplicates[0].Action)
}

func TestRun_IgnoreErrorsRouting(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	require.NoError(t, repo.Create(context.Background(), &domain.Employee{
		TenantID: tenantID, EmployerUnitID: unitID, CPF: "52998224725", Name: "Maria",
	}))

	table := testTable(
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"}, // success
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"}, // dup ignored
		[]string{"", "111.444.777-35", "02/02/1992", "Dev", "4.000,00"}, // error → ignored
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{IgnoreErrors: true, DuplicateHandling: domain.DuplicateIgnore})
	require.NoError(t, err)

	assert.Equal(t, 1, results.SuccessfulImports)
	assert.Equal(t, 0, results.FailedImports)
	assert.Equal(t, 1, results.IgnoredErrors)
	assert.Equal(t, 1, results.DuplicatesHandled)

	ignoredDuplicates := 0
	for _, d := range results.DetailedResults.Duplicates {
		if d.Action == importer.ActionIgnored {
			ignoredDuplicates++
		}
	}
	// reconciled identity: success + failed + ignored errors + ignored duplicates == total
	assert.Equal(t, results.TotalRows,
		results.SuccessfulImports+results.FailedImports+results.IgnoredErrors+ignoredDuplicates)
}

func TestRun_ErrorRowsNotPersisted(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"Ana", "123", "15/03/1990", "Dev", "1.000,00"},
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, repo.count())
	assert.Empty(t, results.DetailedResults.Success)
	require.Len(t, results.DetailedResults.Errors, 1)
	assert.Equal(t, 2, results.DetailedResults.Errors[0].Row)
}

func TestRun_PersistenceErrorIsolatedPerRow(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.failCPF = "93541134780"
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"},
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"},
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{})
	require.NoError(t, err)

	// the failing row lands in errors, the next row still imports
	assert.Equal(t, 1, results.FailedImports)
	assert.Equal(t, 1, results.SuccessfulImports)
	assert.Equal(t, 1, repo.count())
}

func TestRun_WarningRowStillImported(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := domain.RawTable{
		Headers: []string{"Nome", "CPF", "Nascimento", "Cargo", "Salário", "Estado Civil"},
		Rows: [][]string{
			{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00", "namorando"},
		},
	}
	mapping := importer.ColumnMapping{}
	for h, f := range testMapping {
		mapping[h] = f
	}
	mapping["Estado Civil"] = importer.FieldMaritalStatus

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, mapping,
		importer.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, results.Warnings)
	assert.Equal(t, 1, results.SuccessfulImports)
	assert.Equal(t, 1, repo.count())
	require.Len(t, results.DetailedResults.Warnings, 1)

	emp, err := repo.GetByCPF(context.Background(), tenantID, unitID, "52998224725")
	require.NoError(t, err)
	assert.Empty(t, emp.MaritalStatus, "unrecognized value must be dropped")
}

func TestRun_WriteTimeRecheckCatchesInFileCollision(t *testing.T) {
	// two rows share a CPF and nothing is persisted beforehand: the snapshot
	// misses the collision but the pre-write re-check routes the second row
	// through the duplicate policy
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"},
		[]string{"Maria S.", "529.982.247-25", "15/03/1990", "Analista Sr", "4.000,00"},
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{DuplicateHandling: domain.DuplicateUpdate})
	require.NoError(t, err)

	assert.Equal(t, 2, results.SuccessfulImports)
	assert.Equal(t, 1, results.DuplicatesHandled)
	assert.Equal(t, 1, results.UpdatedRecords)
	assert.Equal(t, 1, repo.count())

	emp, err := repo.GetByCPF(context.Background(), tenantID, unitID, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, "Maria S.", emp.Name)
}

func TestRun_CategoryOrderPreserved(t *testing.T) {
	repo := newFakeEmployeeRepo()
	tenantID, unitID := uuid.New(), uuid.New()
	table := testTable(
		[]string{"A", "bad-cpf", "15/03/1990", "Dev", "1.000,00"},
		[]string{"João Lima", "935.411.347-80", "01/01/1985", "Dev", "5.000,00"},
		[]string{"B", "also-bad", "15/03/1990", "Dev", "1.000,00"},
		[]string{"Maria Souza", "529.982.247-25", "15/03/1990", "Analista", "3.500,00"},
	)

	results, err := newTestRunner(repo).Run(context.Background(), tenantID, unitID, table, testMapping,
		importer.ImportOptions{})
	require.NoError(t, err)

	require.Len(t, results.DetailedResults.Errors, 2)
	assert.Less(t, results.DetailedResults.Errors[0].Row, results.DetailedResults.Errors[1].Row)
	require.Len(t, results.DetailedResults.Success, 2)
	assert.Less(t, results.DetailedResults.Success[0].Row, results.DetailedResults.Success[1].Row)
}
