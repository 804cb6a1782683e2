// Package pettycash provides the PettyCashTransaction document (caja
// menor): money in or out of a financial account.
package pettycash

import (
	"context"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/payment"
)

// Type defines the direction of a transaction.
type Type string

const (
	// TypeIncome increases the account balance
	TypeIncome Type = "income"
	// TypeExpense decreases the account balance
	TypeExpense Type = "expense"
)

// Transaction represents a petty cash movement on a financial account.
// Account balances are never stored; they are derived by summing these
// transactions alongside operating expenses.
type Transaction struct {
	entity.Document

	Type Type `db:"type" json:"type"`

	// AccountID is the affected financial account
	AccountID id.ID `db:"account_id" json:"accountId"`

	Amount types.Money `db:"amount" json:"amount"`

	Description string `db:"description" json:"description"`

	PaymentMethod payment.Method `db:"payment_method" json:"paymentMethod"`

	// SupplierID links credit expenses to the owed supplier
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	// PaymentPartnerID links partner-card expenses to the owed partner
	PaymentPartnerID *id.ID `db:"payment_partner_id" json:"paymentPartnerId,omitempty"`
}

// NewTransaction creates a petty cash transaction.
func NewTransaction(locationID, accountID id.ID, txType Type, amount types.Money) *Transaction {
	return &Transaction{
		Document:      entity.NewDocument(locationID),
		Type:          txType,
		AccountID:     accountID,
		Amount:        amount,
		PaymentMethod: payment.Contado,
	}
}

// SignedAmount returns the amount with sign by direction.
func (t *Transaction) SignedAmount() types.Money {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if t.Type != TypeIncome && t.Type != TypeExpense {
		return apperror.NewValidation("invalid transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}

	if id.IsNil(t.AccountID) {
		return apperror.NewValidation("account is required").
			WithDetail("field", "accountId")
	}

	if !t.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	if !t.PaymentMethod.IsValid() {
		return apperror.NewValidation("invalid payment method").
			WithDetail("field", "paymentMethod").
			WithDetail("value", string(t.PaymentMethod))
	}

	// Income is always settled money; credit only makes sense on expenses.
	if t.Type == TypeIncome && t.PaymentMethod.IsCredit() {
		return apperror.NewValidation("income cannot be on credit").
			WithDetail("field", "paymentMethod")
	}

	if t.PaymentMethod == payment.Credito && (t.SupplierID == nil || id.IsNil(*t.SupplierID)) {
		return apperror.NewValidation("supplier is required for credit transactions").
			WithDetail("field", "supplierId")
	}
	if t.PaymentMethod == payment.TarjetaSocio && (t.PaymentPartnerID == nil || id.IsNil(*t.PaymentPartnerID)) {
		return apperror.NewValidation("payment partner is required for partner-card transactions").
			WithDetail("field", "paymentPartnerId")
	}

	return nil
}
