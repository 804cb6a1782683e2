package quote

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for quote documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Quote) error
	GetByID(ctx context.Context, docID id.ID) (*Quote, error)
	GetByNumber(ctx context.Context, number string) (*Quote, error)
	Update(ctx context.Context, doc *Quote) error
	Delete(ctx context.Context, docID id.ID) error

	// Item operations
	GetItems(ctx context.Context, docID id.ID) ([]Item, error)
	SaveItems(ctx context.Context, docID id.ID, items []Item) error

	// ListByWorkOrder retrieves all quotes of one work order
	ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*Quote, error)

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Quote, error)
}

// ListFilter for filtering quotes.
type ListFilter struct {
	domain.ListFilter

	WorkOrderID *id.ID
	ClientID    *id.ID
	AdvisorID   *id.ID
	Status      *Status
	DateFrom    *time.Time
	DateTo      *time.Time
}
