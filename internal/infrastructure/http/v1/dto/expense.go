package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/expense"
)

// CreateExpenseRequest records an operating expense.
type CreateExpenseRequest struct {
	Category  expense.Category `json:"category" binding:"required"`
	AccountID id.ID            `json:"accountId" binding:"required"`
	Amount    types.Money      `json:"amount" binding:"required"`

	Description string `json:"description"`
	Comment     string `json:"comment,omitempty"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreateExpenseRequest) ToEntity(locationID id.ID) *expense.OperatingExpense {
	e := expense.NewOperatingExpense(locationID, r.AccountID, r.Category, r.Amount)
	e.Description = r.Description
	e.Comment = r.Comment
	return e
}

// UpdateExpenseRequest corrects an operating expense.
type UpdateExpenseRequest struct {
	Category  expense.Category `json:"category" binding:"required"`
	AccountID id.ID            `json:"accountId" binding:"required"`
	Amount    types.Money      `json:"amount" binding:"required"`

	Description string `json:"description"`
	Comment     string `json:"comment,omitempty"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateExpenseRequest) ApplyTo(e *expense.OperatingExpense) {
	e.Category = r.Category
	e.AccountID = r.AccountID
	e.Amount = r.Amount
	e.Description = r.Description
	e.Comment = r.Comment
	e.Version = r.Version
}
