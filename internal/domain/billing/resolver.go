// Package billing classifies a work order's invoicing completeness from
// its quotes and invoices.
package billing

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/quote"
)

// Indicator is the badge shown on the work order board.
type Indicator string

const (
	// IndicatorFully: every approved quote is billed and at least one
	// invoice exists
	IndicatorFully Indicator = "fully"
	// IndicatorPartially: invoices exist but approved quotes remain
	// unbilled
	IndicatorPartially Indicator = "partially"
	// IndicatorPending: approved quotes await billing, no invoice yet
	IndicatorPending Indicator = "pending"
	// IndicatorNone: nothing to show
	IndicatorNone Indicator = "none"
)

// Status summarizes how billed one work order is.
type Status struct {
	WorkOrderID id.ID `json:"workOrderId"`

	IsInvoiced    bool        `json:"isInvoiced"`
	InvoiceCount  int         `json:"invoiceCount"`
	TotalInvoiced types.Money `json:"totalInvoiced"`

	PendingQuotes  []id.ID `json:"pendingQuotes"`
	InvoicedQuotes []id.ID `json:"invoicedQuotes"`

	Indicator Indicator `json:"indicator"`
}

// Resolve classifies the work order's billing state. Cancelled invoices
// do not count. A quote is invoiced when its ID appears in some
// invoice's quote links; it is pending when approved and not invoiced.
func Resolve(workOrderID id.ID, invoices []*invoice.Invoice, quotes []*quote.Quote) Status {
	st := Status{
		WorkOrderID:    workOrderID,
		TotalInvoiced:  types.Zero(),
		PendingQuotes:  make([]id.ID, 0),
		InvoicedQuotes: make([]id.ID, 0),
	}

	billed := make(map[id.ID]bool)
	for _, inv := range invoices {
		if inv.WorkOrderID != workOrderID || inv.Status == invoice.StatusCancelada {
			continue
		}
		st.InvoiceCount++
		st.TotalInvoiced = st.TotalInvoiced.Add(inv.TotalAmount)
		for _, quoteID := range inv.QuoteIDs {
			billed[quoteID] = true
		}
	}
	st.IsInvoiced = st.InvoiceCount > 0

	for _, q := range quotes {
		if q.WorkOrderID != workOrderID {
			continue
		}
		switch {
		case billed[q.ID]:
			st.InvoicedQuotes = append(st.InvoicedQuotes, q.ID)
		case q.Status == quote.StatusAprobado:
			st.PendingQuotes = append(st.PendingQuotes, q.ID)
		}
	}

	switch {
	case st.IsInvoiced && len(st.PendingQuotes) == 0:
		st.Indicator = IndicatorFully
	case st.IsInvoiced:
		st.Indicator = IndicatorPartially
	case len(st.PendingQuotes) > 0:
		st.Indicator = IndicatorPending
	default:
		st.Indicator = IndicatorNone
	}

	return st
}
