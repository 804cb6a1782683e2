package purchase

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/payment"
)

// Repository defines operations for purchase documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, docID id.ID) (*Purchase, error)
	Update(ctx context.Context, doc *Purchase) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Purchase, error)
}

// ListFilter for filtering purchases.
type ListFilter struct {
	domain.ListFilter

	SupplierID    *id.ID
	PaymentMethod *payment.Method
	Posted        *bool
	DateFrom      *time.Time
	DateTo        *time.Time
}
