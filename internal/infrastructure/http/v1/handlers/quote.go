package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// QuoteHandler serves the quote lifecycle: draft, send, review,
// approve or reject.
type QuoteHandler struct {
	*BaseHandler
	service *quote.Service
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(base *BaseHandler, service *quote.Service) *QuoteHandler {
	return &QuoteHandler{BaseHandler: base, service: service}
}

// Create handles POST /quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity(h.LocationID(c))

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
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

// Update handles PUT /quotes/:id - edits a draft.
func (h *QuoteHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// List handles GET /quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := quote.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.WorkOrderID, ok = h.ParseIDQuery(c, "workOrderId"); !ok {
		return
	}
	if filter.ClientID, ok = h.ParseIDQuery(c, "clientId"); !ok {
		return
	}
	if filter.AdvisorID, ok = h.ParseIDQuery(c, "advisorId"); !ok {
		return
	}
	if filter.DateFrom, ok = h.ParseTimeQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.ParseTimeQuery(c, "dateTo"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := quote.Status(raw)
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

// ListByWorkOrder handles GET /work-orders/:id/quotes.
func (h *QuoteHandler) ListByWorkOrder(c *gin.Context) {
	ctx := c.Request.Context()

	workOrderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	items, err := h.service.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Send handles POST /quotes/:id/send.
func (h *QuoteHandler) Send(c *gin.Context) {
	h.statusTransition(c, h.service.Send)
}

// MarkReviewed handles POST /quotes/:id/mark-reviewed.
func (h *QuoteHandler) MarkReviewed(c *gin.Context) {
	h.statusTransition(c, h.service.MarkReviewed)
}

// Reject handles POST /quotes/:id/reject.
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.statusTransition(c, h.service.Reject)
}

func (h *QuoteHandler) statusTransition(
	c *gin.Context,
	op func(ctx context.Context, docID id.ID) (*quote.Quote, error),
) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := op(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Approve handles POST /quotes/:id/approve - records the client's
// per-line decision.
func (h *QuoteHandler) Approve(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.ApproveQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Approve(ctx, docID, req.ApprovedLineIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}
