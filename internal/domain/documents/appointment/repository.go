package appointment

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines operations for appointments.
type Repository interface {
	Create(ctx context.Context, doc *Appointment) error
	GetByID(ctx context.Context, docID id.ID) (*Appointment, error)
	Update(ctx context.Context, doc *Appointment) error
	Delete(ctx context.Context, docID id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Appointment], error)

	GetForUpdate(ctx context.Context, docID id.ID) (*Appointment, error)
}

// ListFilter for filtering appointments.
type ListFilter struct {
	domain.ListFilter

	ClientID  *id.ID
	VehicleID *id.ID
	Status    *Status

	// ScheduledFrom/To bound the agenda window
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}
