package pettycash

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/payment"
)

// Repository defines operations for petty cash transactions.
type Repository interface {
	Create(ctx context.Context, doc *Transaction) error
	GetByID(ctx context.Context, docID id.ID) (*Transaction, error)
	Update(ctx context.Context, doc *Transaction) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*Transaction, error)
}

// ListFilter for filtering petty cash transactions.
type ListFilter struct {
	domain.ListFilter

	AccountID     *id.ID
	Type          *Type
	PaymentMethod *payment.Method
	DateFrom      *time.Time
	DateTo        *time.Time
}
