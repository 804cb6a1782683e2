// Package invoice provides the Invoice document (factura): the billed,
// immutable financial record derived from approved quotes of a work order.
package invoice

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/domain/posting"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusPendiente       Status = "pendiente"
	StatusPagada          Status = "pagada"
	StatusVencida         Status = "vencida"
	StatusCancelada       Status = "cancelada"
	StatusPagadaFactoring Status = "pagada_factoring"
)

// IsTerminal returns true for states that allow no further transitions
// (except the factoring retention release sub-transition).
func (s Status) IsTerminal() bool {
	return s == StatusPagada || s == StatusCancelada || s == StatusPagadaFactoring
}

// Item is a frozen snapshot of an approved quote line. Cost and price are
// fixed at billing time and never re-read from the catalogs.
type Item struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// QuoteID is the quote this line came from
	QuoteID id.ID `db:"quote_id" json:"quoteId"`

	// Type is service or inventory (placeholders never reach invoicing)
	Type quote.ItemType `db:"item_type" json:"type"`

	ProductID   *id.ID `db:"product_id" json:"productId,omitempty"`
	Description string `db:"description" json:"description"`

	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	TaxRate   types.Percent  `db:"tax_rate" json:"taxRate"`
	Discount  types.Percent  `db:"discount" json:"discount"`

	Commission types.Money `db:"commission" json:"commission"`
	CostPrice  types.Money `db:"cost_price" json:"costPrice"`

	SuppliedByClient bool `db:"supplied_by_client" json:"suppliedByClient"`
}

// Revenue returns quantity×unitPrice reduced by the line discount.
func (it Item) Revenue() types.Money {
	gross := it.UnitPrice.Mul(it.Quantity.Decimal())
	return types.ApplyDiscount(gross, it.Discount)
}

// Cost returns commission plus, for inventory items, costPrice×quantity.
func (it Item) Cost() types.Money {
	cost := it.Commission
	if it.Type == quote.ItemInventory {
		cost = cost.Add(it.CostPrice.Mul(it.Quantity.Decimal()))
	}
	return cost
}

// FactoringInfo models third-party receivables financing: the factoring
// company pays early, keeps a commission and holds a retention that is
// released exactly once.
type FactoringInfo struct {
	Company         string      `db:"factoring_company" json:"company"`
	Commission      types.Money `db:"factoring_commission" json:"commission"`
	RetentionAmount types.Money `db:"factoring_retention" json:"retentionAmount"`
	Date            time.Time   `db:"factoring_date" json:"date"`

	// AccountID is the financial account the factoring payment landed on
	AccountID id.ID `db:"factoring_account_id" json:"accountId"`

	RetentionReleased   bool       `db:"retention_released" json:"retentionReleased"`
	RetentionReleasedAt *time.Time `db:"retention_released_at" json:"retentionReleasedAt,omitempty"`
}

// Invoice represents a billed financial record. Items and totals are
// immutable after creation; only the status moves.
type Invoice struct {
	entity.Document

	// WorkOrderID links the invoice to its work order
	WorkOrderID id.ID `db:"work_order_id" json:"workOrderId"`

	// QuoteIDs are the quotes this invoice covers
	QuoteIDs []id.ID `db:"-" json:"quoteIds"`

	// Client snapshot
	ClientID   id.ID  `db:"client_id" json:"clientId"`
	ClientName string `db:"client_name" json:"clientName"`

	// AdvisorID from the work order (commission attribution)
	AdvisorID id.ID `db:"advisor_id" json:"advisorId"`

	// Status is the payment lifecycle state
	Status Status `db:"status" json:"status"`

	// DueDate for receivables aging
	DueDate time.Time `db:"due_date" json:"dueDate"`

	// Frozen totals, computed from items at creation
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	TaxAmount   types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount types.Money `db:"total_amount" json:"total"`

	// Payment data
	PaidAt           *time.Time `db:"paid_at" json:"paidAt,omitempty"`
	PaymentAccountID *id.ID     `db:"payment_account_id" json:"paymentAccountId,omitempty"`

	// Factoring is set when the receivable was financed
	Factoring *FactoringInfo `db:"-" json:"factoringInfo,omitempty"`

	// Items is the frozen table part
	Items []Item `db:"-" json:"items"`
}

// Build creates an invoice from the approved items of one or more quotes.
// Every quote must already have passed CanInvoice.
func Build(locationID, workOrderID, clientID, advisorID id.ID, clientName string, issueDate, dueDate time.Time, quotes []*quote.Quote) *Invoice {
	inv := &Invoice{
		Document:    entity.NewDocument(locationID),
		WorkOrderID: workOrderID,
		ClientID:    clientID,
		ClientName:  clientName,
		AdvisorID:   advisorID,
		Status:      StatusPendiente,
		DueDate:     dueDate,
	}
	inv.Date = issueDate

	for _, q := range quotes {
		inv.QuoteIDs = append(inv.QuoteIDs, q.ID)
		for _, qi := range q.ApprovedItems() {
			inv.Items = append(inv.Items, Item{
				LineID:           id.New(),
				LineNo:           len(inv.Items) + 1,
				QuoteID:          q.ID,
				Type:             qi.Type,
				ProductID:        qi.ProductID,
				Description:      qi.Description,
				Quantity:         qi.Quantity,
				UnitPrice:        qi.UnitPrice,
				TaxRate:          qi.TaxRate,
				Discount:         applyGeneral(qi.Discount, q.GeneralDiscount),
				Commission:       qi.Commission,
				CostPrice:        qi.CostPrice,
				SuppliedByClient: qi.SuppliedByClient,
			})
		}
		inv.Subtotal = inv.Subtotal.Add(types.ApplyDiscount(q.Subtotal(), q.GeneralDiscount))
		inv.TaxAmount = inv.TaxAmount.Add(q.TaxAmount())
	}
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount)

	return inv
}

// applyGeneral folds the quote-level general discount into the line
// discount so the frozen line keeps the effective rate:
// 1−e = (1−a)(1−b), all as whole percents.
func applyGeneral(line, general types.Percent) types.Percent {
	if general.IsZero() {
		return line
	}
	kept := types.ApplyDiscount(types.ApplyDiscount(hundredPct(), line), general)
	return hundredPct().Sub(kept)
}

func hundredPct() types.Percent {
	return types.MustMoney("100")
}

// --- Status transitions ---

// MarkPaid records a direct client payment.
func (inv *Invoice) MarkPaid(accountID id.ID, when time.Time) error {
	if inv.Status.IsTerminal() {
		return apperror.NewInvalidTransition(string(inv.Status), string(StatusPagada))
	}
	inv.Status = StatusPagada
	inv.PaidAt = &when
	inv.PaymentAccountID = &accountID
	inv.Touch()
	return nil
}

// MarkOverdue flags an unpaid invoice past its due date.
func (inv *Invoice) MarkOverdue(today time.Time) error {
	if inv.Status != StatusPendiente {
		return apperror.NewInvalidTransition(string(inv.Status), string(StatusVencida))
	}
	if !today.After(inv.DueDate) {
		return apperror.NewValidation("invoice is not past its due date").
			WithDetail("due_date", inv.DueDate)
	}
	inv.Status = StatusVencida
	inv.Touch()
	return nil
}

// Cancel voids the invoice.
func (inv *Invoice) Cancel() error {
	if inv.Status.IsTerminal() {
		return apperror.NewInvalidTransition(string(inv.Status), string(StatusCancelada))
	}
	inv.Status = StatusCancelada
	inv.Touch()
	return nil
}

// ApplyFactoring records that the receivable was sold to a factoring
// company and marks the invoice paid-by-factoring.
func (inv *Invoice) ApplyFactoring(info FactoringInfo) error {
	if inv.Status != StatusPendiente && inv.Status != StatusVencida {
		return apperror.NewInvalidTransition(string(inv.Status), string(StatusPagadaFactoring))
	}
	if info.Company == "" {
		return apperror.NewValidation("factoring company is required").
			WithDetail("field", "company")
	}
	if info.Commission.IsNegative() || info.RetentionAmount.IsNegative() {
		return apperror.NewValidation("factoring amounts cannot be negative")
	}

	info.RetentionReleased = false
	info.RetentionReleasedAt = nil
	inv.Factoring = &info
	inv.Status = StatusPagadaFactoring
	inv.Touch()
	return nil
}

// ReleaseRetention turns the held retention into realized cash.
// This is the single permitted sub-transition on a terminal invoice and
// it happens exactly once.
func (inv *Invoice) ReleaseRetention(when time.Time) error {
	if inv.Factoring == nil {
		return apperror.NewValidation("invoice has no factoring info").
			WithDetail("invoice_id", inv.ID.String())
	}
	if inv.Factoring.RetentionReleased {
		return apperror.NewBusinessRule(
			apperror.CodeRetentionReleased,
			"Factoring retention was already released",
		).WithDetail("invoice_id", inv.ID.String())
	}

	inv.Factoring.RetentionReleased = true
	inv.Factoring.RetentionReleasedAt = &when
	inv.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.WorkOrderID) {
		return apperror.NewValidation("work order is required").
			WithDetail("field", "workOrderId")
	}
	if len(inv.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	if len(inv.QuoteIDs) == 0 {
		return apperror.NewValidation("invoice must reference its quotes").
			WithDetail("field", "quoteIds")
	}

	for i, it := range inv.Items {
		if it.Type == quote.ItemPlaceholder {
			return apperror.NewBusinessRule(
				apperror.CodePlaceholderItem,
				"Invoice cannot contain placeholder items",
			).WithDetail("lineNo", i+1)
		}
	}

	// total = subtotal + tax, always
	if !inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)) {
		return apperror.NewValidation("total must equal subtotal plus tax").
			WithDetail("subtotal", inv.Subtotal.String()).
			WithDetail("tax", inv.TaxAmount.String()).
			WithDetail("total", inv.TotalAmount.String())
	}

	return nil
}

// --- Postable implementation ---
// Billing an inventory item consumes it from the branch stock; parts the
// client supplied never move stock.

// GetDocumentType returns the document type name.
func (inv *Invoice) GetDocumentType() string {
	return "Invoice"
}

// GenerateMovements creates stock expense movements for billed parts.
func (inv *Invoice) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := inv.PostedVersion + 1

	for _, it := range inv.Items {
		if it.Type != quote.ItemInventory || it.SuppliedByClient {
			continue
		}
		if it.ProductID == nil {
			return nil, apperror.NewValidation("inventory item without product").
				WithDetail("lineNo", it.LineNo)
		}

		movements.AddStock(entity.NewStockMovement(
			inv.ID,
			inv.GetDocumentType(),
			newVersion,
			inv.Date,
			entity.RecordTypeExpense,
			inv.LocationID,
			*it.ProductID,
			it.Quantity,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*Invoice)(nil)
