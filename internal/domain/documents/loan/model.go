// Package loan provides the Loan document (préstamo) and its payments.
// The outstanding balance is always derived from the payment list.
package loan

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

// Status is derived from the payment history, never stored directly.
type Status string

const (
	StatusActivo  Status = "activo"
	StatusSaldado Status = "saldado"
)

// Payment is one repayment against a loan.
type Payment struct {
	ID     id.ID `db:"id" json:"id"`
	LoanID id.ID `db:"loan_id" json:"loanId"`

	Date   time.Time   `db:"date" json:"date"`
	Amount types.Money `db:"amount" json:"amount"`

	// AccountID receives the repayment
	AccountID id.ID `db:"account_id" json:"accountId"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// Loan represents money lent out of an account, typically to a staff
// member as a payroll advance.
type Loan struct {
	entity.Document

	// StaffID is the borrower when lending to an employee
	StaffID *id.ID `db:"staff_id" json:"staffId,omitempty"`

	// BorrowerName covers external borrowers without a staff record
	BorrowerName string `db:"borrower_name" json:"borrowerName,omitempty"`

	// AccountID is the source account
	AccountID id.ID `db:"account_id" json:"accountId"`

	Amount types.Money `db:"amount" json:"amount"`

	// Payments is the repayment table part (append-only)
	Payments []Payment `db:"-" json:"payments"`
}

// NewLoan creates a loan document.
func NewLoan(locationID, accountID id.ID, amount types.Money) *Loan {
	return &Loan{
		Document:  entity.NewDocument(locationID),
		AccountID: accountID,
		Amount:    amount,
		Payments:  make([]Payment, 0),
	}
}

// Outstanding returns amount minus the sum of all payments.
func (l *Loan) Outstanding() types.Money {
	paid := types.Zero()
	for _, p := range l.Payments {
		paid = paid.Add(p.Amount)
	}
	return l.Amount.Sub(paid)
}

// Status derives the loan state from its outstanding balance.
func (l *Loan) Status() Status {
	if l.Outstanding().IsPositive() {
		return StatusActivo
	}
	return StatusSaldado
}

// RegisterPayment appends a repayment. Overpaying is rejected.
func (l *Loan) RegisterPayment(date time.Time, amount types.Money, accountID id.ID, notes string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	outstanding := l.Outstanding()
	if amount.GreaterThan(outstanding) {
		return nil, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Payment exceeds outstanding balance",
		).WithDetail("outstanding", outstanding.String()).
			WithDetail("amount", amount.String())
	}

	p := Payment{
		ID:        id.New(),
		LoanID:    l.ID,
		Date:      date,
		Amount:    amount,
		AccountID: accountID,
		Notes:     notes,
	}
	l.Payments = append(l.Payments, p)
	return &p, nil
}

// Validate implements entity.Validatable.
func (l *Loan) Validate(ctx context.Context) error {
	if err := l.Document.Validate(ctx); err != nil {
		return err
	}

	if (l.StaffID == nil || id.IsNil(*l.StaffID)) && l.BorrowerName == "" {
		return apperror.NewValidation("borrower is required").
			WithDetail("field", "staffId")
	}

	if id.IsNil(l.AccountID) {
		return apperror.NewValidation("account is required").
			WithDetail("field", "accountId")
	}

	if !l.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	if l.Outstanding().IsNegative() {
		return apperror.NewValidation("payments exceed the loan amount")
	}

	return nil
}
