package expense

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for operating expenses.
type Repository interface {
	Create(ctx context.Context, doc *OperatingExpense) error
	GetByID(ctx context.Context, docID id.ID) (*OperatingExpense, error)
	Update(ctx context.Context, doc *OperatingExpense) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*OperatingExpense], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*OperatingExpense, error)
}

// ListFilter for filtering operating expenses.
type ListFilter struct {
	domain.ListFilter

	AccountID *id.ID
	Category  *Category
	DateFrom  *time.Time
	DateTo    *time.Time
}
