package importer

import (
	"time"

	"github.com/google/uuid"

	"folharh/internal/domain"
)

// Stage is one step of the import workflow.
type Stage string

const (
	StageUpload     Stage = "upload"
	StageMapping    Stage = "mapping"
	StagePreview    Stage = "preview"
	StageProcessing Stage = "processing"
	StageResults    Stage = "results"
)

// Session is the state of one import workflow: upload → mapping → preview →
// processing → results. Transitions are guarded; an illegal call leaves the
// session unchanged and returns a domain error. Sessions are not safe for
// concurrent use; the owning service serializes access.
type Session struct {
	ID             uuid.UUID          `json:"id"`
	TenantID       uuid.UUID          `json:"tenant_id"`
	EmployerUnitID uuid.UUID          `json:"employer_unit_id"`
	FileID         uuid.UUID          `json:"file_id"`
	Stage          Stage              `json:"stage"`
	Table          domain.RawTable    `json:"-"`
	Mapping        ColumnMapping      `json:"mapping"`
	Preview        []ValidationResult `json:"-"`
	Options        ImportOptions      `json:"options"`
	Results        *ImportResults     `json:"results,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewSession creates a session in the upload stage.
func NewSession(tenantID, unitID uuid.UUID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             uuid.New(),
		TenantID:       tenantID,
		EmployerUnitID: unitID,
		Stage:          StageUpload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AttachTable moves upload → mapping once a table parsed successfully. A
// table without a header row keeps the session in upload. The suggested
// mapping is computed here so the operator starts from it.
func (s *Session) AttachTable(table domain.RawTable, fileID uuid.UUID) error {
	if s.Stage != StageUpload {
		return domain.ErrIllegalTransition
	}
	if len(table.Headers) == 0 {
		return domain.ErrEmptyTable
	}
	s.Table = table
	s.FileID = fileID
	s.Mapping = AutoSuggest(table.Headers)
	s.Stage = StageMapping
	s.touch()
	return nil
}

// SetMapping moves mapping → preview when every required field is mapped.
// Re-mapping from preview is allowed (last one wins); an incomplete mapping
// refuses the transition and the caller surfaces MissingRequired.
func (s *Session) SetMapping(mapping ColumnMapping) error {
	if s.Stage != StageMapping && s.Stage != StagePreview {
		return domain.ErrIllegalTransition
	}
	if !IsComplete(mapping) {
		return domain.ErrMappingIncomplete
	}
	s.Mapping = mapping
	s.Preview = nil
	s.Stage = StagePreview
	s.touch()
	return nil
}

// BeginProcessing moves preview → processing. Error rows block unless the
// operator set ignore_errors; duplicate rows never block, whatever the
// active policy.
func (s *Session) BeginProcessing(opts ImportOptions) error {
	if s.Stage != StagePreview {
		return domain.ErrIllegalTransition
	}
	if !opts.IgnoreErrors {
		for i := range s.Preview {
			if s.Preview[i].Status == RowError {
				return domain.ErrBlockingErrors
			}
		}
	}
	s.Options = opts
	s.Stage = StageProcessing
	s.touch()
	return nil
}

// CompleteProcessing moves processing → results. The run itself never fails
// for row-level problems, so this transition is unconditional on completion.
func (s *Session) CompleteProcessing(results *ImportResults) error {
	if s.Stage != StageProcessing {
		return domain.ErrIllegalTransition
	}
	s.Results = results
	s.Stage = StageResults
	s.touch()
	return nil
}

// FailProcessing returns processing → preview after an infrastructure
// failure, never silently to upload: the parsed table and mapping survive.
func (s *Session) FailProcessing() error {
	if s.Stage != StageProcessing {
		return domain.ErrIllegalTransition
	}
	s.Stage = StagePreview
	s.touch()
	return nil
}

// Reset abandons the session back to upload. Allowed only before processing
// starts; a running batch import completes.
func (s *Session) Reset() error {
	switch s.Stage {
	case StageUpload, StageMapping, StagePreview:
		s.Table = domain.RawTable{}
		s.FileID = uuid.Nil
		s.Mapping = nil
		s.Preview = nil
		s.Options = ImportOptions{}
		s.Results = nil
		s.Stage = StageUpload
		s.touch()
		return nil
	default:
		return domain.ErrIllegalTransition
	}
}

// Snapshot returns a copy of the session safe to read or marshal after the
// owner's lock is released. Mapping, Preview and Results are copied; Table
// cell data is shared but never mutated after AttachTable.
func (s *Session) Snapshot() *Session {
	cp := *s
	if s.Mapping != nil {
		cp.Mapping = make(ColumnMapping, len(s.Mapping))
		for k, v := range s.Mapping {
			cp.Mapping[k] = v
		}
	}
	if s.Preview != nil {
		cp.Preview = make([]ValidationResult, len(s.Preview))
		copy(cp.Preview, s.Preview)
	}
	if s.Results != nil {
		results := *s.Results
		cp.Results = &results
	}
	return &cp
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
