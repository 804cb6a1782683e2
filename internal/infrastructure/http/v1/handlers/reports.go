package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/reports"
)

// ReportsHandler serves the financial and operational reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Profitability handles GET /reports/profitability - per work order
// revenue, cost, and margin.
func (h *ReportsHandler) Profitability(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.ParseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to")
	if !ok {
		return
	}

	rows, err := h.service.Profitability(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// PnL handles GET /reports/pnl - profit and loss for a period.
func (h *ReportsHandler) PnL(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.ParseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to")
	if !ok {
		return
	}
	if from == nil || to == nil {
		h.Error(c, apperror.NewValidation("from and to are required"))
		return
	}

	report, err := h.service.PnL(ctx, reports.Period{From: *from, To: *to})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Receivable handles GET /reports/receivable - pending invoices with
// aging buckets and factoring retentions.
func (h *ReportsHandler) Receivable(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.Receivable(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Payable handles GET /reports/payable - supplier and partner debt.
func (h *ReportsHandler) Payable(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.ParseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.service.Payable(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Commissions handles GET /reports/commissions - advisor commissions
// for the current half-month.
func (h *ReportsHandler) Commissions(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.Commissions(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ClientRetention handles GET /reports/retention - returning clients
// and visit frequency.
func (h *ReportsHandler) ClientRetention(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.ClientRetention(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// OperationalEfficiency handles GET /reports/efficiency - cycle times
// per Kanban stage.
func (h *ReportsHandler) OperationalEfficiency(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.ParseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.service.OperationalEfficiency(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// AccountBalance handles GET /reports/accounts/:id/balance - derived
// from transactions, never stored.
func (h *ReportsHandler) AccountBalance(c *gin.Context) {
	ctx := c.Request.Context()

	accountID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	balance, err := h.service.Balance(ctx, accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId": accountID,
		"balance":   balance,
	})
}

// PayrollSummary handles GET /reports/payroll - gross pay for the
// half-month covering today.
func (h *ReportsHandler) PayrollSummary(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.PayrollSummary(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
