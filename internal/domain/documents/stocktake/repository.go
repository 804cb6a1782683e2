package stocktake

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for stocktake documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Stocktake) error
	GetByID(ctx context.Context, docID id.ID) (*Stocktake, error)
	Update(ctx context.Context, doc *Stocktake) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Stocktake], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Stocktake, error)
}

// ListFilter for filtering stocktakes.
type ListFilter struct {
	domain.ListFilter

	Status   *Status
	Posted   *bool
	DateFrom *time.Time
	DateTo   *time.Time
}
