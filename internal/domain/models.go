package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated organizational tenant (a client company group).
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// EmployerUnit is a tax-registered sub-entity of a company (a CNPJ) that owns
// its own employee roster. All roster operations are scoped to one unit.
type EmployerUnit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CNPJ      string    `db:"cnpj" json:"cnpj"`
	LegalName string    `db:"legal_name" json:"legal_name"`
	TradeName string    `db:"trade_name" json:"trade_name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Employee is a roster entry. CPF is stored digits-only and is the natural
// key for duplicate detection on import. The column is indexed but not unique:
// the create_anyway duplicate policy may insert repeated CPFs on purpose.
type Employee struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	TenantID       uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	EmployerUnitID uuid.UUID     `db:"employer_unit_id" json:"employer_unit_id"`
	Name           string        `db:"name" json:"name"`
	CPF            string        `db:"cpf" json:"cpf"`
	BirthDate      time.Time     `db:"birth_date" json:"birth_date"`
	JobTitle       string        `db:"job_title" json:"job_title"`
	Salary         float64       `db:"salary" json:"salary"`
	Email          string        `db:"email" json:"email"`
	Phone          string        `db:"phone" json:"phone"`
	MaritalStatus  MaritalStatus `db:"marital_status" json:"marital_status"`
	AdmissionDate  *time.Time    `db:"admission_date" json:"admission_date"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded spreadsheet.
type FileMeta struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	TenantID       uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	EmployerUnitID uuid.UUID  `db:"employer_unit_id" json:"employer_unit_id"`
	FileName       string     `db:"file_name" json:"file_name"`
	OriginalName   string     `db:"original_name" json:"original_name"`
	FileType       FileType   `db:"file_type" json:"file_type"`
	FileSize       int64      `db:"file_size" json:"file_size"`
	S3Bucket       string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key          string     `db:"s3_key" json:"s3_key"`
	ContentType    string     `db:"content_type" json:"content_type"`
	Status         FileStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// RawTable is an uploaded spreadsheet parsed into a header row plus data rows.
// Rows are cell-aligned to Headers and immutable once parsed.
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
