package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/loan"
)

// CreateLoanRequest lends money out of an account.
type CreateLoanRequest struct {
	// StaffID is the borrower when lending to an employee
	StaffID *id.ID `json:"staffId"`

	// BorrowerName covers external borrowers without a staff record
	BorrowerName string `json:"borrowerName,omitempty"`

	AccountID id.ID       `json:"accountId" binding:"required"`
	Amount    types.Money `json:"amount" binding:"required"`

	Comment string `json:"comment,omitempty"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreateLoanRequest) ToEntity(locationID id.ID) *loan.Loan {
	l := loan.NewLoan(locationID, r.AccountID, r.Amount)
	l.StaffID = r.StaffID
	l.BorrowerName = r.BorrowerName
	l.Comment = r.Comment
	return l
}

// LoanPaymentRequest registers a repayment against a loan.
type LoanPaymentRequest struct {
	AccountID id.ID       `json:"accountId" binding:"required"`
	Amount    types.Money `json:"amount" binding:"required"`
	Notes     string      `json:"notes,omitempty"`
}
