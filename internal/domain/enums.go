package domain

// FileType represents the allowed spreadsheet types for import upload.
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"csv":  FileTypeCSV,
	"xlsx": FileTypeXLSX,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// MaritalStatus is the enumerated civil-status set accepted on import.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "solteiro"
	MaritalMarried  MaritalStatus = "casado"
	MaritalDivorced MaritalStatus = "divorciado"
	MaritalWidowed  MaritalStatus = "viuvo"
	MaritalUnion    MaritalStatus = "uniao_estavel"
)

// ValidMaritalStatuses is the lookup set for import validation.
var ValidMaritalStatuses = map[MaritalStatus]bool{
	MaritalSingle:   true,
	MaritalMarried:  true,
	MaritalDivorced: true,
	MaritalWidowed:  true,
	MaritalUnion:    true,
}

// DuplicatePolicy is the operator-selected rule for rows whose CPF already
// exists in the target roster.
type DuplicatePolicy string

const (
	DuplicateIgnore       DuplicatePolicy = "ignore"
	DuplicateUpdate       DuplicatePolicy = "update"
	DuplicateCreateAnyway DuplicatePolicy = "create_anyway"
)

// ValidDuplicatePolicies is the lookup set for option parsing.
var ValidDuplicatePolicies = map[DuplicatePolicy]bool{
	DuplicateIgnore:       true,
	DuplicateUpdate:       true,
	DuplicateCreateAnyway: true,
}
