// Package account provides the FinancialAccount catalog.
// Account balances are always derived from transactions, never stored.
package account

import (
	"context"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// AccountType defines the kind of financial account.
type AccountType string

const (
	TypeCash AccountType = "cash" // Caja menor
	TypeBank AccountType = "bank" // Cuenta bancaria
)

// FinancialAccount represents a cash or bank account of one branch.
type FinancialAccount struct {
	entity.Catalog

	// Type is cash or bank
	Type AccountType `db:"type" json:"type"`

	// LocationID is the branch the account belongs to
	LocationID id.ID `db:"location_id" json:"locationId"`

	// BankName for bank accounts
	BankName *string `db:"bank_name" json:"bankName,omitempty"`

	// AccountNumber for bank accounts
	AccountNumber *string `db:"account_number" json:"accountNumber,omitempty"`

	// Active is false for closed accounts (kept for history)
	Active bool `db:"active" json:"active"`
}

// NewFinancialAccount creates a new account with required fields.
func NewFinancialAccount(code, name string, accType AccountType, locationID id.ID) *FinancialAccount {
	return &FinancialAccount{
		Catalog:    entity.NewCatalog(code, name),
		Type:       accType,
		LocationID: locationID,
		Active:     true,
	}
}

// Validate implements entity.Validatable interface.
func (a *FinancialAccount) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch a.Type {
	case TypeCash, TypeBank:
	default:
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	if id.IsNil(a.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}

	if a.Type == TypeBank && (a.AccountNumber == nil || *a.AccountNumber == "") {
		return apperror.NewValidation("account number is required for bank accounts").
			WithDetail("field", "accountNumber")
	}

	return nil
}
