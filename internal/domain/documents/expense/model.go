// Package expense provides the OperatingExpense document (gasto
// operativo): categorized spending charged against a financial account.
package expense

import (
	"context"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

// Category groups expenses for the P&L breakdown.
type Category string

const (
	CategoryArriendo  Category = "arriendo"
	CategoryServicios Category = "servicios"
	CategoryNomina    Category = "nomina"
	CategoryInsumos   Category = "insumos"
	CategoryImpuestos Category = "impuestos"
	CategoryOtros     Category = "otros"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryArriendo, CategoryServicios, CategoryNomina,
		CategoryInsumos, CategoryImpuestos, CategoryOtros:
		return true
	}
	return false
}

// OperatingExpense represents a recurring operating cost.
type OperatingExpense struct {
	entity.Document

	Category Category `db:"category" json:"category"`

	// AccountID is the paying financial account
	AccountID id.ID `db:"account_id" json:"accountId"`

	Amount types.Money `db:"amount" json:"amount"`

	Description string `db:"description" json:"description"`
}

// NewOperatingExpense creates an operating expense document.
func NewOperatingExpense(locationID, accountID id.ID, category Category, amount types.Money) *OperatingExpense {
	return &OperatingExpense{
		Document:  entity.NewDocument(locationID),
		Category:  category,
		AccountID: accountID,
		Amount:    amount,
	}
}

// Validate implements entity.Validatable.
func (e *OperatingExpense) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if !e.Category.IsValid() {
		return apperror.NewValidation("invalid expense category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}

	if id.IsNil(e.AccountID) {
		return apperror.NewValidation("account is required").
			WithDetail("field", "accountId")
	}

	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}
