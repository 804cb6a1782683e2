package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/appointment"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// AppointmentHandler serves the reception agenda.
type AppointmentHandler struct {
	*BaseHandler
	service *appointment.Service
}

// NewAppointmentHandler creates an appointment handler.
func NewAppointmentHandler(base *BaseHandler, service *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{BaseHandler: base, service: service}
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(ctx, req.ToEntity(h.LocationID(c)))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /appointments/:id.
func (h *AppointmentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Confirm handles POST /appointments/:id/confirm.
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Confirm(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Fulfill handles POST /appointments/:id/fulfill - the client showed
// up; optionally links the work order opened at reception.
func (h *AppointmentHandler) Fulfill(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.FulfillAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Fulfill(ctx, docID, req.WorkOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Cancel handles POST /appointments/:id/cancel.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Cancel(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// List handles GET /appointments - the agenda.
func (h *AppointmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := appointment.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "scheduled_at")

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.ClientID, ok = h.ParseIDQuery(c, "clientId"); !ok {
		return
	}
	if filter.VehicleID, ok = h.ParseIDQuery(c, "vehicleId"); !ok {
		return
	}
	if filter.ScheduledFrom, ok = h.ParseTimeQuery(c, "scheduledFrom"); !ok {
		return
	}
	if filter.ScheduledTo, ok = h.ParseTimeQuery(c, "scheduledTo"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := appointment.Status(raw)
		filter.Status = &status
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
