package importer

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"folharh/internal/domain"
	"folharh/internal/port"
)

// DefaultBatchSize bounds how many rows are processed between progress
// checkpoints and inter-batch pauses.
const DefaultBatchSize = 10

// RunnerConfig holds batch importer tunables.
type RunnerConfig struct {
	BatchSize  int
	BatchPause time.Duration
}

// Runner executes a confirmed import run against the roster store: it
// re-validates every row, resolves duplicates against a baseline snapshot of
// the unit's roster, persists creates/updates row by row, and accumulates the
// categorized results. Rows within a batch and batches themselves are
// processed strictly in order; the only waits are the per-row persistence
// call and the inter-batch pause.
type Runner struct {
	employees port.EmployeeRepository
	cfg       RunnerConfig
}

// NewRunner creates a Runner. A non-positive batch size falls back to
// DefaultBatchSize.
func NewRunner(employees port.EmployeeRepository, cfg RunnerConfig) *Runner {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Runner{employees: employees, cfg: cfg}
}

// policy resolves the effective duplicate policy. The boolean flags mirror
// the select the operator sees; duplicate_handling wins when set.
func policy(opts ImportOptions) domain.DuplicatePolicy {
	if domain.ValidDuplicatePolicies[opts.DuplicateHandling] {
		return opts.DuplicateHandling
	}
	if opts.UpdateExisting {
		return domain.DuplicateUpdate
	}
	return domain.DuplicateIgnore
}

// Run imports the mapped table into the unit's roster and returns the
// accumulated results. Row-level failures never abort the run; the returned
// error is non-nil only when the baseline roster snapshot cannot be loaded,
// before any persistence occurs.
func (r *Runner) Run(ctx context.Context, tenantID, unitID uuid.UUID, table domain.RawTable, mapping ColumnMapping, opts ImportOptions) (*ImportResults, error) {
	start := time.Now()

	baseline, err := r.employees.MapByCPF(ctx, tenantID, unitID)
	if err != nil {
		return nil, err
	}

	inputs := ApplyMapping(table, mapping)
	results := &ImportResults{TotalRows: len(inputs)}

	log.Printf("importRunner: starting run for unit %s — %d rows, batch=%d, policy=%s",
		unitID, len(inputs), r.cfg.BatchSize, policy(opts))

	for lo := 0; lo < len(inputs); lo += r.cfg.BatchSize {
		hi := lo + r.cfg.BatchSize
		if hi > len(inputs) {
			hi = len(inputs)
		}
		for _, in := range inputs[lo:hi] {
			r.processRow(ctx, tenantID, unitID, in, opts, baseline, results)
		}
		if hi < len(inputs) && r.cfg.BatchPause > 0 {
			// throttle between batches so the roster store is not saturated;
			// a canceled context skips the pause but never the remaining rows
			select {
			case <-time.After(r.cfg.BatchPause):
			case <-ctx.Done():
			}
		}
	}

	results.ProcessingTime = time.Since(start).Seconds()
	log.Printf("importRunner: run complete — created=%d updated=%d failed=%d ignored=%d duplicates=%d in %.2fs",
		results.SuccessfulImports, results.UpdatedRecords, results.FailedImports,
		results.IgnoredErrors, results.DuplicatesHandled, results.ProcessingTime)
	return results, nil
}

func (r *Runner) processRow(ctx context.Context, tenantID, unitID uuid.UUID, in RowInput, opts ImportOptions, baseline map[string]domain.Employee, results *ImportResults) {
	vr := ValidateRow(in, opts.StrictValidation)

	if vr.Status == RowError {
		recordFailure(results, &vr, opts)
		return
	}
	if vr.Status == RowWarning {
		results.Warnings++
		results.DetailedResults.Warnings = append(results.DetailedResults.Warnings, RowOutcome{
			Row: vr.Row, Name: vr.Data.Name, CPF: vr.Data.CPF,
			Issues: vr.Issues, Messages: issueMessages(vr.Issues),
		})
	}

	cpf := vr.Data.CPF
	if existing, ok := baseline[cpf]; ok {
		r.applyDuplicatePolicy(ctx, tenantID, unitID, &vr, existing, opts, baseline, results)
		return
	}

	// The baseline is a snapshot; re-check right before the write so a
	// concurrent import (or an earlier row of this file) cannot slip a
	// policy-violating duplicate past us.
	existing, err := r.employees.GetByCPF(ctx, tenantID, unitID, cpf)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		recordPersistFailure(results, &vr, opts, err)
		return
	}
	if existing != nil {
		baseline[cpf] = *existing
		r.applyDuplicatePolicy(ctx, tenantID, unitID, &vr, *existing, opts, baseline, results)
		return
	}

	emp := buildEmployee(tenantID, unitID, vr.Data)
	if err := r.employees.Create(ctx, emp); err != nil {
		recordPersistFailure(results, &vr, opts, err)
		return
	}
	baseline[cpf] = *emp
	results.SuccessfulImports++
	results.DetailedResults.Success = append(results.DetailedResults.Success, RowOutcome{
		Row: vr.Row, Name: vr.Data.Name, CPF: cpf, Action: ActionCreated,
	})
}

func (r *Runner) applyDuplicatePolicy(ctx context.Context, tenantID, unitID uuid.UUID, vr *ValidationResult, existing domain.Employee, opts ImportOptions, baseline map[string]domain.Employee, results *ImportResults) {
	results.DuplicatesHandled++

	switch policy(opts) {
	case domain.DuplicateUpdate:
		emp := buildEmployee(tenantID, unitID, vr.Data)
		emp.ID = existing.ID
		emp.CreatedAt = existing.CreatedAt
		if err := r.employees.Update(ctx, emp); err != nil {
			recordPersistFailure(results, vr, opts, err)
			return
		}
		baseline[vr.Data.CPF] = *emp
		results.UpdatedRecords++
		results.SuccessfulImports++
		results.DetailedResults.Duplicates = append(results.DetailedResults.Duplicates, RowOutcome{
			Row: vr.Row, Name: vr.Data.Name, CPF: vr.Data.CPF, Action: ActionUpdated,
		})

	case domain.DuplicateCreateAnyway:
		emp := buildEmployee(tenantID, unitID, vr.Data)
		if err := r.employees.Create(ctx, emp); err != nil {
			recordPersistFailure(results, vr, opts, err)
			return
		}
		results.SuccessfulImports++
		results.DetailedResults.Duplicates = append(results.DetailedResults.Duplicates, RowOutcome{
			Row: vr.Row, Name: vr.Data.Name, CPF: vr.Data.CPF, Action: ActionCreatedAnyway,
		})

	default: // ignore: existing record untouched, not a success
		results.DetailedResults.Duplicates = append(results.DetailedResults.Duplicates, RowOutcome{
			Row: vr.Row, Name: vr.Data.Name, CPF: vr.Data.CPF, Action: ActionIgnored,
		})
	}
}

// recordFailure routes a hard validation failure into errors or, when the
// operator opted in, into ignored. Either way the run continues.
func recordFailure(results *ImportResults, vr *ValidationResult, opts ImportOptions) {
	out := RowOutcome{
		Row: vr.Row, Name: vr.Data.Name, CPF: vr.Data.CPF,
		Issues: vr.Issues, Messages: issueMessages(vr.Issues), Raw: vr.Input.Raw,
	}
	if opts.IgnoreErrors {
		results.IgnoredErrors++
		results.DetailedResults.Ignored = append(results.DetailedResults.Ignored, out)
		return
	}
	results.FailedImports++
	results.DetailedResults.Errors = append(results.DetailedResults.Errors, out)
}

// recordPersistFailure routes an unexpected store error through the same
// branching as a validation failure, tagged with a generic field.
func recordPersistFailure(results *ImportResults, vr *ValidationResult, opts ImportOptions, err error) {
	log.Printf("importRunner: row %d persistence error: %v", vr.Row, err)
	failed := *vr
	failed.Issues = append(append([]Issue(nil), vr.Issues...), Issue{
		Field:    "persistencia",
		Severity: SeverityError,
		Message:  "falha ao gravar registro",
	})
	recordFailure(results, &failed, opts)
}

func issueMessages(issues []Issue) []string {
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, is.Message)
	}
	return msgs
}

func buildEmployee(tenantID, unitID uuid.UUID, data EmployeeFields) *domain.Employee {
	return &domain.Employee{
		TenantID:       tenantID,
		EmployerUnitID: unitID,
		Name:           data.Name,
		CPF:            data.CPF,
		BirthDate:      data.BirthDate,
		JobTitle:       data.JobTitle,
		Salary:         data.Salary,
		Email:          data.Email,
		Phone:          data.Phone,
		MaritalStatus:  data.MaritalStatus,
		AdmissionDate:  data.AdmissionDate,
	}
}
