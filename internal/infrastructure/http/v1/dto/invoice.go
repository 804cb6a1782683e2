package dto

import (
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/invoice"
)

// ConvertToInvoiceRequest bills the approved items of the given quotes.
type ConvertToInvoiceRequest struct {
	WorkOrderID id.ID   `json:"workOrderId" binding:"required"`
	QuoteIDs    []id.ID `json:"quoteIds" binding:"required,min=1"`

	// DueDays overrides the default payment term when > 0
	DueDays int `json:"dueDays"`
}

// ToInput converts the request to the service input.
func (r *ConvertToInvoiceRequest) ToInput() invoice.ConvertInput {
	return invoice.ConvertInput{
		WorkOrderID: r.WorkOrderID,
		QuoteIDs:    r.QuoteIDs,
		DueDays:     r.DueDays,
	}
}

// PayInvoiceRequest settles an invoice against a financial account.
type PayInvoiceRequest struct {
	AccountID id.ID `json:"accountId" binding:"required"`
}

// FactoringRequest records the sale of a receivable to a factoring
// company: immediate payment minus commission, with a retained amount
// released later.
type FactoringRequest struct {
	Company         string      `json:"company" binding:"required"`
	Commission      types.Money `json:"commission"`
	RetentionAmount types.Money `json:"retentionAmount"`
	AccountID       id.ID       `json:"accountId" binding:"required"`
	Date            *time.Time  `json:"date"`
}

// ToInfo converts the request to the domain factoring record.
func (r *FactoringRequest) ToInfo(now time.Time) invoice.FactoringInfo {
	date := now
	if r.Date != nil {
		date = *r.Date
	}
	return invoice.FactoringInfo{
		Company:         r.Company,
		Commission:      r.Commission,
		RetentionAmount: r.RetentionAmount,
		AccountID:       r.AccountID,
		Date:            date,
	}
}
