package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves operating expenses.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateExpenseRequest
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

// Get handles GET /expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
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

// Update handles PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	updated, err := h.service.Update(ctx, doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := expense.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.AccountID, ok = h.ParseIDQuery(c, "accountId"); !ok {
		return
	}
	if filter.DateFrom, ok = h.ParseTimeQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.ParseTimeQuery(c, "dateTo"); !ok {
		return
	}
	if raw := c.Query("category"); raw != "" {
		category := expense.Category(raw)
		filter.Category = &category
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
