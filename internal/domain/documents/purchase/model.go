// Package purchase provides the Purchase document (compra): parts bought
// from a supplier into a branch's stock.
package purchase

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/payment"
	"tallerpro/internal/domain/posting"
)

// Line is one received part.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	UnitCost types.Money    `db:"unit_cost" json:"unitCost"`

	// TaxRate is the IVA as a whole percent
	TaxRate types.Percent `db:"tax_rate" json:"taxRate"`
}

// Amount returns quantity×unitCost before tax.
func (l Line) Amount() types.Money {
	return l.UnitCost.Mul(l.Quantity.Decimal())
}

// Purchase represents a supplier purchase document.
type Purchase struct {
	entity.Document

	// SupplierID references the parts provider
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// PaymentMethod determines payable creation
	PaymentMethod payment.Method `db:"payment_method" json:"paymentMethod"`

	// PaymentPartnerID is required for tarjeta_socio purchases
	PaymentPartnerID *id.ID `db:"payment_partner_id" json:"paymentPartnerId,omitempty"`

	// AccountID is the paying account for contado purchases
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	// SupplierInvoiceNumber is the supplier's own document reference
	SupplierInvoiceNumber string `db:"supplier_invoice_number" json:"supplierInvoiceNumber,omitempty"`

	// DueDate for credit purchases
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	// Totals (calculated from lines)
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	TaxAmount   types.Money `db:"tax_amount" json:"taxAmount"`
	TotalAmount types.Money `db:"total_amount" json:"total"`

	// Lines is the received-goods table part
	Lines []Line `db:"-" json:"lines"`
}

// NewPurchase creates a purchase document.
func NewPurchase(locationID, supplierID id.ID, method payment.Method) *Purchase {
	return &Purchase{
		Document:      entity.NewDocument(locationID),
		SupplierID:    supplierID,
		PaymentMethod: method,
		Lines:         make([]Line, 0),
	}
}

// AddLine appends a received part and recalculates totals.
func (p *Purchase) AddLine(productID id.ID, quantity types.Quantity, unitCost types.Money, taxRate types.Percent) {
	p.Lines = append(p.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(p.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		TaxRate:   taxRate,
	})
	p.recalculateTotals()
}

func (p *Purchase) recalculateTotals() {
	p.Subtotal = types.Zero()
	p.TaxAmount = types.Zero()
	for _, l := range p.Lines {
		p.Subtotal = p.Subtotal.Add(l.Amount())
		p.TaxAmount = p.TaxAmount.Add(types.ApplyPercent(l.Amount(), l.TaxRate))
	}
	p.TotalAmount = p.Subtotal.Add(p.TaxAmount)
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	switch p.PaymentMethod {
	case payment.Contado, payment.Credito, payment.TarjetaSocio:
	default:
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(p.PaymentMethod))
	}

	if p.PaymentMethod == payment.TarjetaSocio && (p.PaymentPartnerID == nil || id.IsNil(*p.PaymentPartnerID)) {
		return apperror.NewValidation("payment partner is required for partner-card purchases").
			WithDetail("field", "paymentPartnerId")
	}

	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, l := range p.Lines {
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !l.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if l.UnitCost.IsNegative() {
			return apperror.NewValidation("unit cost cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// --- Postable implementation ---

// GetDocumentType returns the document type name.
func (p *Purchase) GetDocumentType() string {
	return "Purchase"
}

// GenerateMovements creates stock receipt movements for received parts.
func (p *Purchase) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := p.PostedVersion + 1

	for _, l := range p.Lines {
		movements.AddStock(entity.NewStockMovement(
			p.ID,
			p.GetDocumentType(),
			newVersion,
			p.Date,
			entity.RecordTypeReceipt,
			p.LocationID,
			l.ProductID,
			l.Quantity,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*Purchase)(nil)
