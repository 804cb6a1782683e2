package dto

import (
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/quote"
)

// QuoteItemRequest is one proposed line.
type QuoteItemRequest struct {
	Type        quote.ItemType `json:"type" binding:"required"`
	ProductID   *id.ID         `json:"productId"`
	Description string         `json:"description"`

	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitPrice types.Money    `json:"unitPrice"`
	TaxRate   types.Percent  `json:"taxRate"`
	Discount  types.Percent  `json:"discount"`

	Commission types.Money `json:"commission"`
	CostPrice  types.Money `json:"costPrice"`

	SuppliedByClient bool `json:"suppliedByClient"`
}

func (r *QuoteItemRequest) toItem() quote.Item {
	return quote.Item{
		Type:             r.Type,
		ProductID:        r.ProductID,
		Description:      r.Description,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		TaxRate:          r.TaxRate,
		Discount:         r.Discount,
		Commission:       r.Commission,
		CostPrice:        r.CostPrice,
		SuppliedByClient: r.SuppliedByClient,
	}
}

// CreateQuoteRequest drafts a quote for a work order.
type CreateQuoteRequest struct {
	WorkOrderID id.ID `json:"workOrderId" binding:"required"`
	ClientID    id.ID `json:"clientId" binding:"required"`
	AdvisorID   id.ID `json:"advisorId" binding:"required"`

	GeneralDiscount types.Percent `json:"generalDiscount"`
	ValidUntil      *time.Time    `json:"validUntil"`
	Comment         string        `json:"comment,omitempty"`

	Items []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreateQuoteRequest) ToEntity(locationID id.ID) *quote.Quote {
	q := quote.NewQuote(locationID, r.WorkOrderID, r.ClientID, r.AdvisorID)
	q.GeneralDiscount = r.GeneralDiscount
	q.ValidUntil = r.ValidUntil
	q.Comment = r.Comment
	for _, it := range r.Items {
		q.AddItem(it.toItem())
	}
	return q
}

// UpdateQuoteRequest replaces the editable fields of a draft quote.
type UpdateQuoteRequest struct {
	GeneralDiscount types.Percent `json:"generalDiscount"`
	ValidUntil      *time.Time    `json:"validUntil"`
	Comment         string        `json:"comment,omitempty"`

	Items []QuoteItemRequest `json:"items" binding:"required,min=1"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced
// wholesale; the document fields stay.
func (r *UpdateQuoteRequest) ApplyTo(q *quote.Quote) {
	q.GeneralDiscount = r.GeneralDiscount
	q.ValidUntil = r.ValidUntil
	q.Comment = r.Comment
	q.Version = r.Version

	q.Items = q.Items[:0]
	for _, it := range r.Items {
		q.AddItem(it.toItem())
	}
}

// ApproveQuoteRequest records the client's decision. An empty list
// approves every line.
type ApproveQuoteRequest struct {
	ApprovedLineIDs []id.ID `json:"approvedLineIds"`
}
