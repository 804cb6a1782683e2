package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/domain/billing"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/quote"
)

// BillingHandler answers how billed a work order is.
type BillingHandler struct {
	*BaseHandler
	invoices *invoice.Service
	quotes   *quote.Service
}

// NewBillingHandler creates a billing status handler.
func NewBillingHandler(base *BaseHandler, invoices *invoice.Service, quotes *quote.Service) *BillingHandler {
	return &BillingHandler{
		BaseHandler: base,
		invoices:    invoices,
		quotes:      quotes,
	}
}

// WorkOrderStatus handles GET /work-orders/:id/billing-status - the
// badge shown on the Kanban board.
func (h *BillingHandler) WorkOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	workOrderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	invs, err := h.invoices.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	qs, err := h.quotes.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, billing.Resolve(workOrderID, invs, qs))
}
