package timeentry

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for time entries.
type Repository interface {
	Create(ctx context.Context, doc *TimeEntry) error
	GetByID(ctx context.Context, docID id.ID) (*TimeEntry, error)
	Update(ctx context.Context, doc *TimeEntry) error
	Delete(ctx context.Context, docID id.ID) error

	// GetOpenEntry returns the staff member's open shift, or a not-found
	// error when every shift is closed
	GetOpenEntry(ctx context.Context, staffID id.ID) (*TimeEntry, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*TimeEntry], error)
}

// ListFilter for filtering time entries.
type ListFilter struct {
	domain.ListFilter

	StaffID  *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
	OnlyOpen bool
}
