package importer

import (
	"time"

	"github.com/google/uuid"

	"folharh/internal/domain"
)

// Severity grades a row issue.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is a single problem found on one row field.
type Issue struct {
	Field    string   `json:"field"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// RowStatus classifies a validated row.
type RowStatus string

const (
	RowValid   RowStatus = "valid"
	RowWarning RowStatus = "warning"
	RowError   RowStatus = "error"
)

// RowInput is the mapped, still-raw view of one spreadsheet row. Values holds
// the cells that mapped to system fields; Raw carries every original cell by
// header for traceability and re-export. Row is 1-based in the source file
// (the header row is row 1, the first data row is row 2).
type RowInput struct {
	Row    int                    `json:"row"`
	Values map[SystemField]string `json:"values"`
	Raw    map[string]string      `json:"raw"`
}

// EmployeeFields holds the typed values parsed out of one row. Fields stay at
// their zero value when the corresponding cell was absent or unparsable.
type EmployeeFields struct {
	Name          string               `json:"name"`
	CPF           string               `json:"cpf"`
	BirthDate     time.Time            `json:"birth_date"`
	Age           int                  `json:"age"`
	JobTitle      string               `json:"job_title"`
	Salary        float64              `json:"salary"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	MaritalStatus domain.MaritalStatus `json:"marital_status,omitempty"`
	AdmissionDate *time.Time           `json:"admission_date,omitempty"`
}

// DuplicateType classifies what a duplicate row collided with.
const (
	DuplicateTypeExisting = "database_existing"
	DuplicateTypeInFile   = "in_file"
)

// DuplicateInfo describes the record a row collides with.
type DuplicateInfo struct {
	ExistingEmployeeID uuid.UUID `json:"existing_employee_id"`
	DuplicateType      string    `json:"duplicate_type"`
}

// ValidationResult is the outcome of validating one row. It is created by
// ValidateRow, annotated by the duplicate resolver, and read-only afterwards.
type ValidationResult struct {
	Row           int            `json:"row"`
	Input         RowInput       `json:"-"`
	Data          EmployeeFields `json:"data"`
	Status        RowStatus      `json:"status"`
	Issues        []Issue        `json:"issues"`
	IsDuplicate   bool           `json:"is_duplicate"`
	DuplicateInfo *DuplicateInfo `json:"duplicate_info,omitempty"`
}

// ImportOptions is the operator-supplied configuration for one import run.
// Immutable for the duration of the run.
type ImportOptions struct {
	SkipDuplicates       bool                   `json:"skip_duplicates"`
	UpdateExisting       bool                   `json:"update_existing"`
	StrictValidation     bool                   `json:"strict_validation"`
	IgnoreErrors         bool                   `json:"ignore_errors"`
	DuplicateHandling    domain.DuplicatePolicy `json:"duplicate_handling"`
	FlagInFileDuplicates bool                   `json:"flag_in_file_duplicates"`
}

// RowOutcome is one entry of the categorized detailed results. It carries the
// original row number and enough context to render or re-export the row.
type RowOutcome struct {
	Row      int               `json:"row"`
	Name     string            `json:"name"`
	CPF      string            `json:"cpf"`
	Action   string            `json:"action,omitempty"`
	Messages []string          `json:"messages,omitempty"`
	Issues   []Issue           `json:"issues,omitempty"`
	Raw      map[string]string `json:"raw,omitempty"`
}

// Row actions recorded in detailed results.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionIgnored       = "ignored"
	ActionCreatedAnyway = "created_anyway"
)

// DetailedResults groups row outcomes by category. Original row order is
// preserved within each category.
type DetailedResults struct {
	Success    []RowOutcome `json:"success"`
	Errors     []RowOutcome `json:"errors"`
	Warnings   []RowOutcome `json:"warnings"`
	Ignored    []RowOutcome `json:"ignored"`
	Duplicates []RowOutcome `json:"duplicates"`
}

// ImportResults is the aggregate accounting of one import run. Created once
// per run, immutable after the run completes.
type ImportResults struct {
	TotalRows         int             `json:"total_rows"`
	SuccessfulImports int             `json:"successful_imports"`
	UpdatedRecords    int             `json:"updated_records"`
	FailedImports     int             `json:"failed_imports"`
	Warnings          int             `json:"warnings"`
	IgnoredErrors     int             `json:"ignored_errors"`
	DuplicatesHandled int             `json:"duplicates_handled"`
	ProcessingTime    float64         `json:"processing_time"`
	DetailedResults   DetailedResults `json:"detailed_results"`
}
