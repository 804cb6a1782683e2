package workorder

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for work order documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *WorkOrder) error
	GetByID(ctx context.Context, docID id.ID) (*WorkOrder, error)
	GetByNumber(ctx context.Context, number string) (*WorkOrder, error)
	Update(ctx context.Context, doc *WorkOrder) error
	Delete(ctx context.Context, docID id.ID) error

	// History operations. Entries are append-only.
	GetHistory(ctx context.Context, docID id.ID) ([]HistoryEntry, error)
	AppendHistory(ctx context.Context, docID id.ID, entries []HistoryEntry) error

	// Quote links
	GetLinkedQuoteIDs(ctx context.Context, docID id.ID) ([]id.ID, error)
	SaveLinkedQuoteIDs(ctx context.Context, docID id.ID, quoteIDs []id.ID) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*WorkOrder], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*WorkOrder, error)
}

// ListFilter for filtering work orders.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	ClientID     *id.ID
	VehicleID    *id.ID
	AdvisorID    *id.ID
	TechnicianID *id.ID
	Stage        *Stage
	Status       *Status
	DateFrom     *time.Time
	DateTo       *time.Time
}
