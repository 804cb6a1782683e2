package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// TimeEntryHandler serves the time clock.
type TimeEntryHandler struct {
	*BaseHandler
	service *timeentry.Service
}

// NewTimeEntryHandler creates a time entry handler.
func NewTimeEntryHandler(base *BaseHandler, service *timeentry.Service) *TimeEntryHandler {
	return &TimeEntryHandler{BaseHandler: base, service: service}
}

// PunchIn handles POST /time-entries/punch-in - opens a shift.
func (h *TimeEntryHandler) PunchIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PunchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.PunchIn(ctx, req.StaffID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// PunchOut handles POST /time-entries/punch-out - closes the open shift.
func (h *TimeEntryHandler) PunchOut(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PunchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.PunchOut(ctx, req.StaffID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Get handles GET /time-entries/:id.
func (h *TimeEntryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entry, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// List handles GET /time-entries.
func (h *TimeEntryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := timeentry.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")
	filter.OnlyOpen = c.Query("onlyOpen") == "true"

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.StaffID, ok = h.ParseIDQuery(c, "staffId"); !ok {
		return
	}
	if filter.DateFrom, ok = h.ParseTimeQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.ParseTimeQuery(c, "dateTo"); !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
