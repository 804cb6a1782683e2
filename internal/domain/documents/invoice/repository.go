package invoice

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for invoice documents.
type Repository interface {
	// CRUD operations. Invoices are immutable except status fields, so
	// Update only touches the header row.
	Create(ctx context.Context, doc *Invoice) error
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	Update(ctx context.Context, doc *Invoice) error

	// Item operations. Items are written once at creation.
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error

	// Quote link operations
	GetQuoteIDs(ctx context.Context, docID id.ID) ([]id.ID, error)
	SaveQuoteIDs(ctx context.Context, docID id.ID, quoteIDs []id.ID) error

	// ListByWorkOrder retrieves all invoices of one work order
	ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*Invoice, error)

	// ListOverdueCandidates retrieves pending invoices with due date
	// before the given day (for the overdue sweep)
	ListOverdueCandidates(ctx context.Context, locationID *id.ID, before time.Time) ([]*Invoice, error)

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Invoice, error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	WorkOrderID *id.ID
	ClientID    *id.ID
	AdvisorID   *id.ID
	Status      *Status
	DateFrom    *time.Time
	DateTo      *time.Time
	DueBefore   *time.Time
}
