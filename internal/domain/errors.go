package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrTableParse          = errors.New("uploaded file could not be parsed as a table")
	ErrEmptyTable          = errors.New("uploaded file has no header row")
	ErrMappingIncomplete   = errors.New("required fields are not mapped")
	ErrSessionNotFound     = errors.New("import session not found")
	ErrIllegalTransition   = errors.New("import session stage does not allow this operation")
	ErrBlockingErrors      = errors.New("validation errors block processing")
	ErrDuplicateCPF        = errors.New("employee with this CPF already exists in the unit")
)
