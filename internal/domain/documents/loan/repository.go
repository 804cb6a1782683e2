package loan

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for loans and their payments.
type Repository interface {
	Create(ctx context.Context, doc *Loan) error
	GetByID(ctx context.Context, docID id.ID) (*Loan, error)
	Update(ctx context.Context, doc *Loan) error

	// Payment operations. Payments are append-only.
	GetPayments(ctx context.Context, loanID id.ID) ([]Payment, error)
	AddPayment(ctx context.Context, p Payment) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Loan], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*Loan, error)
}

// ListFilter for filtering loans.
type ListFilter struct {
	domain.ListFilter

	StaffID  *id.ID
	DateFrom *time.Time
	DateTo   *time.Time

	// OnlyOutstanding keeps loans with a positive balance
	OnlyOutstanding bool
}
