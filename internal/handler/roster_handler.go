package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"folharh/internal/service"
)

// RosterHandler handles the employer unit and employee read endpoints.
type RosterHandler struct {
	roster service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// ListUnits handles GET /api/v1/units
func (h *RosterHandler) ListUnits(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	units, total, err := h.roster.ListUnits(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, units, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetUnit handles GET /api/v1/units/:id
func (h *RosterHandler) GetUnit(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_UNIT_ID", "unit id must be a valid UUID")
		return
	}

	unit, err := h.roster.GetUnit(c.Request.Context(), tenantID, unitID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, unit)
}

// ListEmployees handles GET /api/v1/units/:id/employees
func (h *RosterHandler) ListEmployees(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_UNIT_ID", "unit id must be a valid UUID")
		return
	}
	offset, limit := pagination(c)

	employees, total, err := h.roster.ListEmployees(c.Request.Context(), tenantID, unitID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, employees, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetEmployee handles GET /api/v1/employees/:id
func (h *RosterHandler) GetEmployee(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	empID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_EMPLOYEE_ID", "employee id must be a valid UUID")
		return
	}

	emp, err := h.roster.GetEmployee(c.Request.Context(), tenantID, empID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, emp)
}

// pagination reads offset/limit query params with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
