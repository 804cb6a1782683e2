package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/payment"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// PettyCashHandler serves petty cash movements on financial accounts.
type PettyCashHandler struct {
	*BaseHandler
	service *pettycash.Service
}

// NewPettyCashHandler creates a petty cash handler.
func NewPettyCashHandler(base *BaseHandler, service *pettycash.Service) *PettyCashHandler {
	return &PettyCashHandler{BaseHandler: base, service: service}
}

// Create handles POST /petty-cash.
func (h *PettyCashHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePettyCashRequest
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

// Get handles GET /petty-cash/:id.
func (h *PettyCashHandler) Get(c *gin.Context) {
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

// Update handles PUT /petty-cash/:id.
func (h *PettyCashHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePettyCashRequest
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

// Delete handles DELETE /petty-cash/:id.
func (h *PettyCashHandler) Delete(c *gin.Context) {
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

// List handles GET /petty-cash.
func (h *PettyCashHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := pettycash.ListFilter{ListFilter: domain.DefaultListFilter()}
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
	if raw := c.Query("type"); raw != "" {
		txType := pettycash.Type(raw)
		filter.Type = &txType
	}
	if raw := c.Query("paymentMethod"); raw != "" {
		method := payment.Method(raw)
		filter.PaymentMethod = &method
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
