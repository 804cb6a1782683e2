package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves billing: quote conversion, payment, factoring.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Convert handles POST /invoices/convert - bills approved quote items.
func (h *InvoiceHandler) Convert(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ConvertToInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.ConvertFromQuotes(ctx, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
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

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{ListFilter: domain.DefaultListFilter()}
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
	if filter.DueBefore, ok = h.ParseTimeQuery(c, "dueBefore"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := invoice.Status(raw)
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

// ListByWorkOrder handles GET /work-orders/:id/invoices.
func (h *InvoiceHandler) ListByWorkOrder(c *gin.Context) {
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

// Pay handles POST /invoices/:id/pay.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.PayInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.Pay(ctx, docID, req.AccountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Cancel handles POST /invoices/:id/cancel.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
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

// ApplyFactoring handles POST /invoices/:id/factoring.
func (h *InvoiceHandler) ApplyFactoring(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.FactoringRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.ApplyFactoring(ctx, docID, req.ToInfo(appctx.GetRequest(ctx).Now))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ReleaseRetention handles POST /invoices/:id/release-retention.
func (h *InvoiceHandler) ReleaseRetention(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.ReleaseRetention(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// SweepOverdue handles POST /invoices/sweep-overdue - flags pending
// invoices past their due date. Scoped to the active branch when set.
func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	ctx := c.Request.Context()

	var locationID *id.ID
	if loc := h.LocationID(c); !id.IsNil(loc) {
		locationID = &loc
	}

	count, err := h.service.SweepOverdue(ctx, locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}
