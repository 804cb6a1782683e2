// Package quote provides the Quote document (cotización): a priced,
// client-approvable proposal of services and parts for a work order.
package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

// Status is the quote lifecycle state.
type Status string

const (
	StatusBorrador  Status = "borrador"
	StatusEnviado   Status = "enviado"
	StatusRevisado  Status = "revisado"
	StatusAprobado  Status = "aprobado"
	StatusRechazado Status = "rechazado"
	StatusFacturado Status = "facturado"
)

// ItemType is the tagged-union discriminator for quote items.
type ItemType string

const (
	// ItemService is labor, carries no stock or cost price
	ItemService ItemType = "service"
	// ItemInventory is a stocked part with a cost price
	ItemInventory ItemType = "inventory"
	// ItemPlaceholder is a to-be-priced line. Placeholders must never
	// reach invoicing.
	ItemPlaceholder ItemType = "placeholder"
)

// Item is one line of a quote.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Type discriminates service / inventory / placeholder
	Type ItemType `db:"item_type" json:"type"`

	// ProductID references the catalog entry; nil for placeholders
	ProductID *id.ID `db:"product_id" json:"productId,omitempty"`

	// Description shown to the client
	Description string `db:"description" json:"description"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	// TaxRate is the IVA as a whole percent (19 = 19%)
	TaxRate types.Percent `db:"tax_rate" json:"taxRate"`

	// Discount is a per-line discount as a whole percent
	Discount types.Percent `db:"discount" json:"discount"`

	// Commission owed to a referring partner for this line (amount, COP)
	Commission types.Money `db:"commission" json:"commission"`

	// CostPrice per unit, frozen at quoting time (inventory items)
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// SuppliedByClient marks parts brought in by the client:
	// they are billed as labor carriers but never move stock
	SuppliedByClient bool `db:"supplied_by_client" json:"suppliedByClient"`

	// Approved is the per-item client decision (partial approval allowed)
	Approved bool `db:"approved" json:"approved"`
}

// Revenue returns quantity×unitPrice reduced by the line discount.
func (it Item) Revenue() types.Money {
	gross := it.UnitPrice.Mul(it.Quantity.Decimal())
	return types.ApplyDiscount(gross, it.Discount)
}

// Cost returns the line cost: partner commission plus, for inventory
// items, costPrice×quantity.
func (it Item) Cost() types.Money {
	cost := it.Commission
	if it.Type == ItemInventory {
		cost = cost.Add(it.CostPrice.Mul(it.Quantity.Decimal()))
	}
	return cost
}

// Quote represents a priced proposal tied to a work order.
type Quote struct {
	entity.Document

	// WorkOrderID is the order this quote belongs to
	WorkOrderID id.ID `db:"work_order_id" json:"workOrderId"`

	// ClientID snapshot from the work order
	ClientID id.ID `db:"client_id" json:"clientId"`

	// AdvisorID earns the commission when this quote is invoiced
	AdvisorID id.ID `db:"advisor_id" json:"advisorId"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// GeneralDiscount applies on top of line discounts (whole percent)
	GeneralDiscount types.Percent `db:"general_discount" json:"generalDiscount"`

	// ValidUntil is the offer expiry date
	ValidUntil *time.Time `db:"valid_until" json:"validUntil,omitempty"`

	// Items is the ordered table part
	Items []Item `db:"-" json:"items"`
}

// NewQuote creates a draft quote for a work order.
func NewQuote(locationID, workOrderID, clientID, advisorID id.ID) *Quote {
	return &Quote{
		Document:    entity.NewDocument(locationID),
		WorkOrderID: workOrderID,
		ClientID:    clientID,
		AdvisorID:   advisorID,
		Status:      StatusBorrador,
		Items:       make([]Item, 0),
	}
}

// AddItem appends a line to the quote. New lines start approved; the
// client's review can later deselect them.
func (q *Quote) AddItem(item Item) {
	if id.IsNil(item.LineID) {
		item.LineID = id.New()
	}
	item.LineNo = len(q.Items) + 1
	item.Approved = true
	q.Items = append(q.Items, item)
}

// ApprovedItems returns the lines the client accepted.
func (q *Quote) ApprovedItems() []Item {
	out := make([]Item, 0, len(q.Items))
	for _, it := range q.Items {
		if it.Approved {
			out = append(out, it)
		}
	}
	return out
}

// Subtotal is the sum of approved line revenues (after line discounts,
// before the general discount and tax).
func (q *Quote) Subtotal() types.Money {
	sum := decimal.Zero
	for _, it := range q.Items {
		if it.Approved {
			sum = sum.Add(it.Revenue())
		}
	}
	return sum
}

// TaxAmount is the IVA over approved lines, after both discount levels.
func (q *Quote) TaxAmount() types.Money {
	sum := decimal.Zero
	for _, it := range q.Items {
		if !it.Approved {
			continue
		}
		base := types.ApplyDiscount(it.Revenue(), q.GeneralDiscount)
		sum = sum.Add(types.ApplyPercent(base, it.TaxRate))
	}
	return sum
}

// Total = subtotal×(1−generalDiscount%) + tax.
func (q *Quote) Total() types.Money {
	return types.ApplyDiscount(q.Subtotal(), q.GeneralDiscount).Add(q.TaxAmount())
}

// --- Status transitions ---

// Send marks the draft as sent to the client.
func (q *Quote) Send() error {
	if q.Status != StatusBorrador {
		return apperror.NewInvalidTransition(string(q.Status), string(StatusEnviado))
	}
	q.Status = StatusEnviado
	q.Touch()
	return nil
}

// MarkReviewed records that the client opened/discussed the quote.
func (q *Quote) MarkReviewed() error {
	if q.Status != StatusEnviado {
		return apperror.NewInvalidTransition(string(q.Status), string(StatusRevisado))
	}
	q.Status = StatusRevisado
	q.Touch()
	return nil
}

// Approve records the client decision. approvedLineIDs selects the accepted
// lines (partial approval); an empty selection rejects the quote.
func (q *Quote) Approve(approvedLineIDs []id.ID) error {
	if q.Status != StatusEnviado && q.Status != StatusRevisado {
		return apperror.NewInvalidTransition(string(q.Status), string(StatusAprobado))
	}

	accepted := make(map[id.ID]bool, len(approvedLineIDs))
	for _, lineID := range approvedLineIDs {
		accepted[lineID] = true
	}

	any := false
	for i := range q.Items {
		q.Items[i].Approved = accepted[q.Items[i].LineID]
		if q.Items[i].Approved {
			any = true
		}
	}

	if !any {
		q.Status = StatusRechazado
	} else {
		q.Status = StatusAprobado
	}
	q.Touch()
	return nil
}

// Reject declines the whole quote.
func (q *Quote) Reject() error {
	if q.Status == StatusFacturado {
		return apperror.NewInvalidTransition(string(q.Status), string(StatusRechazado))
	}
	q.Status = StatusRechazado
	q.Touch()
	return nil
}

// CanInvoice verifies the quote can be converted into an invoice:
// it must be approved and its approved lines must contain no placeholders.
func (q *Quote) CanInvoice() error {
	if q.Status != StatusAprobado {
		return apperror.NewBusinessRule(
			apperror.CodeQuoteNotApproved,
			"Only approved quotes can be invoiced",
		).WithDetail("quote_id", q.ID.String()).
			WithDetail("status", string(q.Status))
	}

	for _, it := range q.Items {
		if it.Approved && it.Type == ItemPlaceholder {
			return apperror.NewBusinessRule(
				apperror.CodePlaceholderItem,
				"Quote contains placeholder items and cannot be invoiced",
			).WithDetail("quote_id", q.ID.String()).
				WithDetail("line_no", it.LineNo)
		}
	}

	return nil
}

// MarkInvoiced transitions the quote to Facturado. Called by invoice
// conversion after CanInvoice passed.
func (q *Quote) MarkInvoiced() error {
	if q.Status != StatusAprobado {
		return apperror.NewInvalidTransition(string(q.Status), string(StatusFacturado))
	}
	q.Status = StatusFacturado
	q.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.WorkOrderID) {
		return apperror.NewValidation("work order is required").
			WithDetail("field", "workOrderId")
	}

	if q.GeneralDiscount.IsNegative() || q.GeneralDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("general discount must be between 0 and 100").
			WithDetail("field", "generalDiscount")
	}

	for i, it := range q.Items {
		switch it.Type {
		case ItemService, ItemInventory, ItemPlaceholder:
		default:
			return apperror.NewValidation("invalid item type").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}

		if it.Type != ItemPlaceholder {
			if it.ProductID == nil || id.IsNil(*it.ProductID) {
				return apperror.NewValidation("product is required").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
			if !it.Quantity.IsPositive() {
				return apperror.NewValidation("quantity must be positive").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
			if it.UnitPrice.IsNegative() {
				return apperror.NewValidation("unit price cannot be negative").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
		}

		if it.Discount.IsNegative() || it.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.NewValidation("discount must be between 0 and 100").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType returns the document type name.
func (q *Quote) GetDocumentType() string {
	return "Quote"
}
