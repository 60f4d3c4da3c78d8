package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"folharh/internal/config"
	"folharh/internal/csvexport"
	"folharh/internal/domain"
	"folharh/internal/importer"
	"folharh/internal/port"
	"folharh/internal/tableparse"
)

// SessionUploadInput is the DTO for starting an import session.
type SessionUploadInput struct {
	TenantID       uuid.UUID
	EmployerUnitID uuid.UUID
	File           multipart.File
	Header         *multipart.FileHeader
}

// PreviewPage is the validated preview of a session plus its row counts.
type PreviewPage struct {
	Results    []importer.ValidationResult `json:"results"`
	TotalRows  int                         `json:"total_rows"`
	ValidRows  int                         `json:"valid_rows"`
	WarnRows   int                         `json:"warning_rows"`
	ErrorRows  int                         `json:"error_rows"`
	Duplicates int                         `json:"duplicates"`
}

// ImportService orchestrates the import workflow: upload, mapping, preview,
// batch processing and the error report.
type ImportService interface {
	CreateSession(ctx context.Context, input SessionUploadInput) (*importer.Session, error)
	GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error)
	SetMapping(ctx context.Context, tenantID, sessionID uuid.UUID, mapping importer.ColumnMapping) (*importer.Session, error)
	Preview(ctx context.Context, tenantID, sessionID uuid.UUID) (*PreviewPage, error)
	Process(ctx context.Context, tenantID, sessionID uuid.UUID, opts importer.ImportOptions) (*importer.ImportResults, error)
	Results(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.ImportResults, error)
	ErrorReportCSV(ctx context.Context, tenantID, sessionID uuid.UUID) (string, []byte, error)
	Reset(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error)
	RestoreSession(ctx context.Context, tenantID, fileID uuid.UUID) (*importer.Session, error)
	UploadURL(ctx context.Context, tenantID, sessionID uuid.UUID) (string, error)
}

// sessionEntry wraps a session with its own lock; Session itself is not safe
// for concurrent use.
type sessionEntry struct {
	mu      sync.Mutex
	session *importer.Session
}

type importService struct {
	tenants   port.TenantRepository
	units     port.EmployerUnitRepository
	employees port.EmployeeRepository
	files     port.FileMetaRepository
	storage   port.ObjectStorage
	runner    *importer.Runner
	s3cfg     *config.S3Config

	// previewRows caps how many validated rows a preview response carries;
	// the counts always cover the whole table. Zero means no cap.
	previewRows int

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// NewImportService creates a new ImportService implementation. Sessions are
// held in memory and die with the process; the roster itself is persistent.
func NewImportService(
	tenants port.TenantRepository,
	units port.EmployerUnitRepository,
	employees port.EmployeeRepository,
	files port.FileMetaRepository,
	storage port.ObjectStorage,
	runner *importer.Runner,
	s3cfg *config.S3Config,
	previewRows int,
) ImportService {
	return &importService{
		tenants:     tenants,
		units:       units,
		employees:   employees,
		files:       files,
		storage:     storage,
		runner:      runner,
		s3cfg:       s3cfg,
		previewRows: previewRows,
		sessions:    make(map[uuid.UUID]*sessionEntry),
	}
}

func (s *importService) CreateSession(ctx context.Context, input SessionUploadInput) (*importer.Session, error) {
	tenant, err := s.tenants.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive {
		return nil, domain.ErrTenantInactive
	}
	if _, err := s.units.GetByID(ctx, input.TenantID, input.EmployerUnitID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	if !contentTypeMatches(fileType, http.DetectContentType(data)) {
		return nil, domain.ErrUnsupportedFileType
	}

	table, err := tableparse.Parse(data, fileType)
	if err != nil {
		return nil, err
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("tenants/%s/imports/%s/%s", input.TenantID, fileID, input.Header.Filename)

	meta := &domain.FileMeta{
		ID:             fileID,
		TenantID:       input.TenantID,
		EmployerUnitID: input.EmployerUnitID,
		FileName:       fileID.String() + "." + ext,
		OriginalName:   input.Header.Filename,
		FileType:       fileType,
		FileSize:       input.Header.Size,
		S3Bucket:       s.s3cfg.Bucket,
		S3Key:          s3Key,
		ContentType:    input.Header.Header.Get("Content-Type"),
		Status:         domain.FileStatusPending,
	}
	if err := s.files.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("creating file metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(data),
		ContentType: meta.ContentType,
		Size:        meta.FileSize,
	})
	if err != nil {
		log.Printf("importService.CreateSession: S3 upload failed for file %s: %v", fileID, err)
		_ = s.files.UpdateStatus(ctx, meta.TenantID, meta.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}
	if err := s.files.UpdateStatus(ctx, meta.TenantID, meta.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating file status: %w", err)
	}

	session := importer.NewSession(input.TenantID, input.EmployerUnitID)
	if err := session.AttachTable(table, fileID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	log.Printf("importService.CreateSession: session %s for unit %s — %d columns, %d rows",
		session.ID, input.EmployerUnitID, len(table.Headers), len(table.Rows))
	return session.Snapshot(), nil
}

func (s *importService) GetSession(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Snapshot(), nil
}

func (s *importService) SetMapping(ctx context.Context, tenantID, sessionID uuid.UUID, mapping importer.ColumnMapping) (*importer.Session, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if err := session.SetMapping(mapping); err != nil {
		return nil, err
	}

	preview, err := s.buildPreview(ctx, session)
	if err != nil {
		return nil, err
	}
	session.Preview = preview
	return session.Snapshot(), nil
}

func (s *importService) Preview(ctx context.Context, tenantID, sessionID uuid.UUID) (*PreviewPage, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if session.Stage != importer.StagePreview && session.Stage != importer.StageResults {
		return nil, domain.ErrIllegalTransition
	}

	page := &PreviewPage{TotalRows: len(session.Preview)}
	for i := range session.Preview {
		switch session.Preview[i].Status {
		case importer.RowValid:
			page.ValidRows++
		case importer.RowWarning:
			page.WarnRows++
		case importer.RowError:
			page.ErrorRows++
		}
		if session.Preview[i].IsDuplicate {
			page.Duplicates++
		}
	}
	n := len(session.Preview)
	if s.previewRows > 0 && n > s.previewRows {
		n = s.previewRows
	}
	page.Results = make([]importer.ValidationResult, n)
	copy(page.Results, session.Preview[:n])
	return page, nil
}

func (s *importService) Process(ctx context.Context, tenantID, sessionID uuid.UUID, opts importer.ImportOptions) (*importer.ImportResults, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if opts.FlagInFileDuplicates {
		session.Preview = importer.FlagInFileDuplicates(session.Preview)
	}
	if err := session.BeginProcessing(opts); err != nil {
		return nil, err
	}

	results, err := s.runner.Run(ctx, session.TenantID, session.EmployerUnitID, session.Table, session.Mapping, opts)
	if err != nil {
		log.Printf("importService.Process: run failed for session %s: %v", session.ID, err)
		_ = session.FailProcessing()
		return nil, fmt.Errorf("import run: %w", err)
	}
	if err := session.CompleteProcessing(results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *importService) Results(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.ImportResults, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.session.Stage != importer.StageResults || entry.session.Results == nil {
		return nil, domain.ErrIllegalTransition
	}
	results := *entry.session.Results
	return &results, nil
}

// ErrorReportCSV renders the failed and ignored rows of a completed run as a
// UTF-8 BOM CSV and returns its download filename and bytes. A copy is
// uploaded to S3 best-effort; a storage failure never blocks the download.
func (s *importService) ErrorReportCSV(ctx context.Context, tenantID, sessionID uuid.UUID) (string, []byte, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return "", nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	if session.Stage != importer.StageResults || session.Results == nil {
		return "", nil, domain.ErrIllegalTransition
	}

	meta, err := s.files.GetByID(ctx, tenantID, session.FileID)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf, session.Table.Headers)
	if err := w.WriteHeader(); err != nil {
		return "", nil, fmt.Errorf("writing error report: %w", err)
	}
	if err := w.WriteOutcomes(session.Results.DetailedResults.Errors); err != nil {
		return "", nil, fmt.Errorf("writing error report: %w", err)
	}
	if err := w.WriteOutcomes(session.Results.DetailedResults.Ignored); err != nil {
		return "", nil, fmt.Errorf("writing error report: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("writing error report: %w", err)
	}

	filename := csvexport.BuildFilename(meta.OriginalName)
	reportKey := fmt.Sprintf("tenants/%s/imports/%s/reports/%s", tenantID, session.FileID, filename)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         reportKey,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: "text/csv",
		Size:        int64(buf.Len()),
	}); err != nil {
		log.Printf("importService.ErrorReportCSV: report upload failed for session %s: %v", session.ID, err)
	}

	return filename, buf.Bytes(), nil
}

// Reset abandons the session back to upload and discards its stored file:
// the S3 object is deleted and the file metadata marked deleted. Storage
// cleanup is best-effort; an orphaned object never blocks the reset.
func (s *importService) Reset(ctx context.Context, tenantID, sessionID uuid.UUID) (*importer.Session, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	fileID := entry.session.FileID
	if err := entry.session.Reset(); err != nil {
		return nil, err
	}

	if fileID != uuid.Nil {
		meta, err := s.files.GetByID(ctx, tenantID, fileID)
		if err != nil {
			log.Printf("importService.Reset: file lookup failed for %s: %v", fileID, err)
		} else {
			if err := s.storage.Delete(ctx, meta.S3Bucket, meta.S3Key); err != nil {
				log.Printf("importService.Reset: S3 delete failed for %s: %v", meta.S3Key, err)
			}
			if err := s.files.UpdateStatus(ctx, tenantID, fileID, domain.FileStatusDeleted); err != nil {
				log.Printf("importService.Reset: status update failed for %s: %v", fileID, err)
			}
		}
	}
	return entry.session.Snapshot(), nil
}

// RestoreSession rebuilds a session from a previously uploaded file, for
// example after a restart dropped the in-memory session table. The stored
// object is downloaded and re-parsed; the new session starts at mapping.
func (s *importService) RestoreSession(ctx context.Context, tenantID, fileID uuid.UUID) (*importer.Session, error) {
	meta, err := s.files.GetByID(ctx, tenantID, fileID)
	if err != nil {
		return nil, err
	}
	if meta.Status != domain.FileStatusUploaded {
		return nil, domain.ErrNotFound
	}

	data, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		log.Printf("importService.RestoreSession: S3 download failed for %s: %v", meta.S3Key, err)
		return nil, fmt.Errorf("downloading stored file: %w", err)
	}

	table, err := tableparse.Parse(data, meta.FileType)
	if err != nil {
		return nil, err
	}

	session := importer.NewSession(meta.TenantID, meta.EmployerUnitID)
	if err := session.AttachTable(table, meta.ID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	log.Printf("importService.RestoreSession: session %s restored from file %s — %d rows",
		session.ID, meta.ID, len(table.Rows))
	return session.Snapshot(), nil
}

// UploadURL returns a presigned download link for the session's original
// spreadsheet.
func (s *importService) UploadURL(ctx context.Context, tenantID, sessionID uuid.UUID) (string, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return "", err
	}
	entry.mu.Lock()
	fileID := entry.session.FileID
	entry.mu.Unlock()
	if fileID == uuid.Nil {
		return "", domain.ErrNotFound
	}

	meta, err := s.files.GetByID(ctx, tenantID, fileID)
	if err != nil {
		return "", err
	}
	url, err := s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.s3cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning file %s: %w", fileID, err)
	}
	return url, nil
}

// buildPreview validates every mapped row and annotates roster collisions.
// Preview validation is non-strict; strictness is an option of the run.
func (s *importService) buildPreview(ctx context.Context, session *importer.Session) ([]importer.ValidationResult, error) {
	existing, err := s.employees.MapByCPF(ctx, session.TenantID, session.EmployerUnitID)
	if err != nil {
		return nil, fmt.Errorf("loading roster snapshot: %w", err)
	}

	inputs := importer.ApplyMapping(session.Table, session.Mapping)
	results := make([]importer.ValidationResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, importer.ValidateRow(in, false))
	}
	return importer.ResolveDuplicates(results, existing), nil
}

// entry fetches a session entry scoped to the tenant. A session belonging to
// another tenant is indistinguishable from a missing one.
func (s *importService) entry(tenantID, sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || entry.session.TenantID != tenantID {
		return nil, domain.ErrSessionNotFound
	}
	return entry, nil
}

// contentTypeMatches checks the sniffed content type against the claimed
// file type. CSV sniffs as text/plain; XLSX is a zip container.
func contentTypeMatches(fileType domain.FileType, detected string) bool {
	switch fileType {
	case domain.FileTypeCSV:
		return strings.HasPrefix(detected, "text/") ||
			strings.HasPrefix(detected, "application/csv")
	case domain.FileTypeXLSX:
		return strings.HasPrefix(detected, "application/zip") ||
			strings.HasPrefix(detected, "application/vnd.openxmlformats")
	default:
		return false
	}
}
