package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"folharh/internal/importer"
	"folharh/internal/service"
)

// ImportHandler handles the import session endpoints.
type ImportHandler struct {
	imports service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(imports service.ImportService) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// CreateSession handles POST /api/v1/import/sessions
func (h *ImportHandler) CreateSession(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	unitID, err := uuid.Parse(c.PostForm("employer_unit_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_UNIT_ID", "employer_unit_id must be a valid UUID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	session, err := h.imports.CreateSession(c.Request.Context(), service.SessionUploadInput{
		TenantID:       tenantID,
		EmployerUnitID: unitID,
		File:           file,
		Header:         header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sessionView(session))
}

// GetSession handles GET /api/v1/import/sessions/:id
func (h *ImportHandler) GetSession(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	session, err := h.imports.GetSession(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sessionView(session))
}

type setMappingRequest struct {
	Mapping map[string]string `json:"mapping" binding:"required"`
}

// SetMapping handles PUT /api/v1/import/sessions/:id/mapping
func (h *ImportHandler) SetMapping(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	var req setMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "mapping object is required")
		return
	}

	mapping := make(importer.ColumnMapping, len(req.Mapping))
	for header, field := range req.Mapping {
		f := importer.SystemField(field)
		if !importer.IsKnownField(f) {
			RespondError(c, http.StatusBadRequest, "UNKNOWN_FIELD",
				fmt.Sprintf("unknown system field: %s", field))
			return
		}
		mapping[header] = f
	}

	session, err := h.imports.SetMapping(c.Request.Context(), tenantID, sessionID, mapping)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sessionView(session))
}

// Preview handles GET /api/v1/import/sessions/:id/preview
func (h *ImportHandler) Preview(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	page, err := h.imports.Preview(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, page)
}

// Process handles POST /api/v1/import/sessions/:id/process
func (h *ImportHandler) Process(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}

	var opts importer.ImportOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "import options are malformed")
		return
	}

	results, err := h.imports.Process(c.Request.Context(), tenantID, sessionID, opts)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// Results handles GET /api/v1/import/sessions/:id/results
func (h *ImportHandler) Results(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	results, err := h.imports.Results(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// ErrorReport handles GET /api/v1/import/sessions/:id/errors.csv
func (h *ImportHandler) ErrorReport(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	filename, data, err := h.imports.ErrorReportCSV(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// FileURL handles GET /api/v1/import/sessions/:id/file
func (h *ImportHandler) FileURL(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	url, err := h.imports.UploadURL(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

type restoreSessionRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

// Restore handles POST /api/v1/import/sessions/restore
func (h *ImportHandler) Restore(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req restoreSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "file_id is required")
		return
	}
	fileID, err := uuid.Parse(req.FileID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE_ID", "file_id must be a valid UUID")
		return
	}

	session, err := h.imports.RestoreSession(c.Request.Context(), tenantID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sessionView(session))
}

// Reset handles POST /api/v1/import/sessions/:id/reset
func (h *ImportHandler) Reset(c *gin.Context) {
	tenantID, sessionID, ok := sessionScope(c)
	if !ok {
		return
	}
	session, err := h.imports.Reset(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sessionView(session))
}

// sessionScope extracts the tenant and the :id path parameter.
func sessionScope(c *gin.Context) (tenantID, sessionID uuid.UUID, ok bool) {
	tenantID, ok = tenantFromContext(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, sessionID, true
}

// sessionView shapes a session for API responses: the raw table collapses to
// its dimensions, the suggested mapping and stage travel in full.
func sessionView(s *importer.Session) gin.H {
	return gin.H{
		"id":               s.ID,
		"employer_unit_id": s.EmployerUnitID,
		"file_id":          s.FileID,
		"stage":            s.Stage,
		"headers":          s.Table.Headers,
		"row_count":        len(s.Table.Rows),
		"mapping":          s.Mapping,
		"missing_required": importer.MissingRequired(s.Mapping),
		"created_at":       s.CreatedAt,
		"updated_at":       s.UpdatedAt,
	}
}
