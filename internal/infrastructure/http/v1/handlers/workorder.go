package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// WorkOrderHandler serves the work order Kanban lifecycle.
type WorkOrderHandler struct {
	*BaseHandler
	service *workorder.Service
}

// NewWorkOrderHandler creates a work order handler.
func NewWorkOrderHandler(base *BaseHandler, service *workorder.Service) *WorkOrderHandler {
	return &WorkOrderHandler{BaseHandler: base, service: service}
}

// Create handles POST /work-orders - open an order at reception.
func (h *WorkOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorkOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Create(ctx, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /work-orders/:id.
func (h *WorkOrderHandler) Get(c *gin.Context) {
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

// List handles GET /work-orders - the Kanban board feed.
func (h *WorkOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter, ok := h.parseFilter(c)
	if !ok {
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

func (h *WorkOrderHandler) parseFilter(c *gin.Context) (workorder.ListFilter, bool) {
	filter := workorder.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.ClientID, ok = h.ParseIDQuery(c, "clientId"); !ok {
		return filter, false
	}
	if filter.VehicleID, ok = h.ParseIDQuery(c, "vehicleId"); !ok {
		return filter, false
	}
	if filter.AdvisorID, ok = h.ParseIDQuery(c, "advisorId"); !ok {
		return filter, false
	}
	if filter.TechnicianID, ok = h.ParseIDQuery(c, "technicianId"); !ok {
		return filter, false
	}
	if filter.DateFrom, ok = h.ParseTimeQuery(c, "dateFrom"); !ok {
		return filter, false
	}
	if filter.DateTo, ok = h.ParseTimeQuery(c, "dateTo"); !ok {
		return filter, false
	}

	if raw := c.Query("stage"); raw != "" {
		stage := workorder.Stage(raw)
		filter.Stage = &stage
	}
	if raw := c.Query("status"); raw != "" {
		status := workorder.Status(raw)
		filter.Status = &status
	}

	return filter, true
}

// Advance handles POST /work-orders/:id/advance.
func (h *WorkOrderHandler) Advance(c *gin.Context) {
	h.stageTransition(c, h.service.AdvanceStage)
}

// Retreat handles POST /work-orders/:id/retreat.
func (h *WorkOrderHandler) Retreat(c *gin.Context) {
	h.stageTransition(c, h.service.RetreatStage)
}

// RequireAttention handles POST /work-orders/:id/require-attention.
func (h *WorkOrderHandler) RequireAttention(c *gin.Context) {
	h.stageTransition(c, h.service.RequireAttention)
}

func (h *WorkOrderHandler) stageTransition(
	c *gin.Context,
	op func(ctx context.Context, docID id.ID, expected workorder.Stage, notes string) (*workorder.WorkOrder, error),
) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.StageTransitionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := op(ctx, docID, req.ExpectedStage, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Cancel handles POST /work-orders/:id/cancel.
func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.CancelWorkOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.CancelOrder(ctx, docID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// AssignTechnician handles POST /work-orders/:id/assign-technician.
func (h *WorkOrderHandler) AssignTechnician(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.AssignTechnicianRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.AssignTechnician(ctx, docID, req.StaffID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SetWaitingParts handles POST /work-orders/:id/waiting-parts.
func (h *WorkOrderHandler) SetWaitingParts(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.WaitingPartsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.SetWaitingParts(ctx, docID, req.Waiting)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
