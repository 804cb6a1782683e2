package dto

import (
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/domain/payment"
)

// PurchaseLineRequest is one received part.
type PurchaseLineRequest struct {
	ProductID id.ID          `json:"productId" binding:"required"`
	Quantity  types.Quantity `json:"quantity" binding:"required"`
	UnitCost  types.Money    `json:"unitCost"`
	TaxRate   types.Percent  `json:"taxRate"`
}

// CreatePurchaseRequest registers a supplier purchase.
type CreatePurchaseRequest struct {
	SupplierID    id.ID          `json:"supplierId" binding:"required"`
	PaymentMethod payment.Method `json:"paymentMethod" binding:"required"`

	// PaymentPartnerID is required for tarjeta_socio purchases
	PaymentPartnerID *id.ID `json:"paymentPartnerId"`

	// AccountID is the paying account for contado purchases
	AccountID *id.ID `json:"accountId"`

	SupplierInvoiceNumber string     `json:"supplierInvoiceNumber,omitempty"`
	DueDate               *time.Time `json:"dueDate"`
	Comment               string     `json:"comment,omitempty"`

	Lines []PurchaseLineRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreatePurchaseRequest) ToEntity(locationID id.ID) *purchase.Purchase {
	p := purchase.NewPurchase(locationID, r.SupplierID, r.PaymentMethod)
	p.PaymentPartnerID = r.PaymentPartnerID
	p.AccountID = r.AccountID
	p.SupplierInvoiceNumber = r.SupplierInvoiceNumber
	p.DueDate = r.DueDate
	p.Comment = r.Comment
	for _, l := range r.Lines {
		p.AddLine(l.ProductID, l.Quantity, l.UnitCost, l.TaxRate)
	}
	return p
}

// UpdatePurchaseRequest replaces an unposted purchase document.
type UpdatePurchaseRequest struct {
	SupplierID            id.ID          `json:"supplierId" binding:"required"`
	PaymentMethod         payment.Method `json:"paymentMethod" binding:"required"`
	PaymentPartnerID      *id.ID         `json:"paymentPartnerId"`
	AccountID             *id.ID         `json:"accountId"`
	SupplierInvoiceNumber string         `json:"supplierInvoiceNumber,omitempty"`
	DueDate               *time.Time     `json:"dueDate"`
	Comment               string         `json:"comment,omitempty"`

	Lines []PurchaseLineRequest `json:"lines" binding:"required,min=1"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced
// wholesale.
func (r *UpdatePurchaseRequest) ApplyTo(p *purchase.Purchase) {
	p.SupplierID = r.SupplierID
	p.PaymentMethod = r.PaymentMethod
	p.PaymentPartnerID = r.PaymentPartnerID
	p.AccountID = r.AccountID
	p.SupplierInvoiceNumber = r.SupplierInvoiceNumber
	p.DueDate = r.DueDate
	p.Comment = r.Comment
	p.Version = r.Version

	p.Lines = p.Lines[:0]
	for _, l := range r.Lines {
		p.AddLine(l.ProductID, l.Quantity, l.UnitCost, l.TaxRate)
	}
}
