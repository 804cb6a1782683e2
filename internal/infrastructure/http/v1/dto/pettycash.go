package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/payment"
)

// CreatePettyCashRequest records a cash movement on an account.
type CreatePettyCashRequest struct {
	Type      pettycash.Type `json:"type" binding:"required"`
	AccountID id.ID          `json:"accountId" binding:"required"`
	Amount    types.Money    `json:"amount" binding:"required"`

	Description   string         `json:"description"`
	PaymentMethod payment.Method `json:"paymentMethod"`

	// SupplierID links credit expenses to the owed supplier
	SupplierID *id.ID `json:"supplierId"`

	// PaymentPartnerID links partner-card expenses to the owed partner
	PaymentPartnerID *id.ID `json:"paymentPartnerId"`

	Comment string `json:"comment,omitempty"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreatePettyCashRequest) ToEntity(locationID id.ID) *pettycash.Transaction {
	t := pettycash.NewTransaction(locationID, r.AccountID, r.Type, r.Amount)
	t.Description = r.Description
	if r.PaymentMethod != "" {
		t.PaymentMethod = r.PaymentMethod
	}
	t.SupplierID = r.SupplierID
	t.PaymentPartnerID = r.PaymentPartnerID
	t.Comment = r.Comment
	return t
}

// UpdatePettyCashRequest corrects a petty cash transaction.
type UpdatePettyCashRequest struct {
	Type      pettycash.Type `json:"type" binding:"required"`
	AccountID id.ID          `json:"accountId" binding:"required"`
	Amount    types.Money    `json:"amount" binding:"required"`

	Description      string         `json:"description"`
	PaymentMethod    payment.Method `json:"paymentMethod"`
	SupplierID       *id.ID         `json:"supplierId"`
	PaymentPartnerID *id.ID         `json:"paymentPartnerId"`
	Comment          string         `json:"comment,omitempty"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePettyCashRequest) ApplyTo(t *pettycash.Transaction) {
	t.Type = r.Type
	t.AccountID = r.AccountID
	t.Amount = r.Amount
	t.Description = r.Description
	if r.PaymentMethod != "" {
		t.PaymentMethod = r.PaymentMethod
	}
	t.SupplierID = r.SupplierID
	t.PaymentPartnerID = r.PaymentPartnerID
	t.Comment = r.Comment
	t.Version = r.Version
}
