package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/account"
)

// CreateAccountRequest is the request body for opening a financial account.
type CreateAccountRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	Type          account.AccountType `json:"type" binding:"required"`
	LocationID    id.ID               `json:"locationId" binding:"required"`
	BankName      *string             `json:"bankName"`
	AccountNumber *string             `json:"accountNumber"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAccountRequest) ToEntity() *account.FinancialAccount {
	a := account.NewFinancialAccount(r.Code, r.Name, r.Type, r.LocationID)
	a.BankName = r.BankName
	a.AccountNumber = r.AccountNumber
	return a
}

// UpdateAccountRequest is the request body for updating a financial account.
type UpdateAccountRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	Type          account.AccountType `json:"type" binding:"required"`
	LocationID    id.ID               `json:"locationId" binding:"required"`
	BankName      *string             `json:"bankName"`
	AccountNumber *string             `json:"accountNumber"`
	Active        bool                `json:"active"`
	Version       int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAccountRequest) ApplyTo(a *account.FinancialAccount) {
	a.Code = r.Code
	a.Name = r.Name
	a.Type = r.Type
	a.LocationID = r.LocationID
	a.BankName = r.BankName
	a.AccountNumber = r.AccountNumber
	a.Active = r.Active
	a.Version = r.Version
}
