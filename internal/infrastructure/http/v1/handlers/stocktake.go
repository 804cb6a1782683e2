package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/stocktake"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// StocktakeHandler serves physical counts and their posting.
type StocktakeHandler struct {
	*BaseHandler
	service *stocktake.Service
}

// NewStocktakeHandler creates a stocktake handler.
func NewStocktakeHandler(base *BaseHandler, service *stocktake.Service) *StocktakeHandler {
	return &StocktakeHandler{BaseHandler: base, service: service}
}

// Create handles POST /stocktakes.
func (h *StocktakeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStocktakeRequest
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

// Get handles GET /stocktakes/:id.
func (h *StocktakeHandler) Get(c *gin.Context) {
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

// List handles GET /stocktakes.
func (h *StocktakeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := stocktake.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

	if loc := h.LocationID(c); !id.IsNil(loc) {
		filter.LocationID = &loc
	}

	var ok bool
	if filter.DateFrom, ok = h.ParseTimeQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.ParseTimeQuery(c, "dateTo"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := stocktake.Status(raw)
		filter.Status = &status
	}
	if raw := c.Query("posted"); raw != "" {
		posted := raw == "true"
		filter.Posted = &posted
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

// PrepareSheet handles POST /stocktakes/:id/prepare - fills the sheet
// from the branch's register balances.
func (h *StocktakeHandler) PrepareSheet(c *gin.Context) {
	h.transition(c, h.service.PrepareSheet)
}

// Start handles POST /stocktakes/:id/start.
func (h *StocktakeHandler) Start(c *gin.Context) {
	h.transition(c, h.service.Start)
}

// Complete handles POST /stocktakes/:id/complete.
func (h *StocktakeHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// Cancel handles POST /stocktakes/:id/cancel.
func (h *StocktakeHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// Post handles POST /stocktakes/:id/post - records adjustments.
func (h *StocktakeHandler) Post(c *gin.Context) {
	h.transition(c, h.service.Post)
}

// Unpost handles POST /stocktakes/:id/unpost - reverses adjustments.
func (h *StocktakeHandler) Unpost(c *gin.Context) {
	h.transition(c, h.service.Unpost)
}

func (h *StocktakeHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, docID id.ID) (*stocktake.Stocktake, error),
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

// RecordCount handles POST /stocktakes/:id/counts.
func (h *StocktakeHandler) RecordCount(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.RecordCountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.RecordCount(ctx, docID, req.LineNo, req.CountedQty)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Variance handles GET /stocktakes/:id/variance - the deviation summary.
func (h *StocktakeHandler) Variance(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	result, err := h.service.GetVariance(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /stocktakes/:id - unposted counts only.
func (h *StocktakeHandler) Delete(c *gin.Context) {
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
