package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/loan"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// LoanHandler serves loans and their repayments.
type LoanHandler struct {
	*BaseHandler
	service *loan.Service
}

// NewLoanHandler creates a loan handler.
func NewLoanHandler(base *BaseHandler, service *loan.Service) *LoanHandler {
	return &LoanHandler{BaseHandler: base, service: service}
}

// Create handles POST /loans.
func (h *LoanHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateLoanRequest
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

// Get handles GET /loans/:id.
func (h *LoanHandler) Get(c *gin.Context) {
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

// RegisterPayment handles POST /loans/:id/payments.
func (h *LoanHandler) RegisterPayment(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.LoanPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.RegisterPayment(ctx, docID, req.AccountID, req.Amount, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// List handles GET /loans.
func (h *LoanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := loan.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")
	filter.OnlyOutstanding = c.Query("onlyOutstanding") == "true"

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
