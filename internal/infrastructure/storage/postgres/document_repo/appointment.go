package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/appointment"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const appointmentsTable = "doc_appointments"

// AppointmentRepo implements appointment.Repository.
type AppointmentRepo struct {
	*BaseDocumentRepo[*appointment.Appointment]
}

// NewAppointmentRepo creates a new appointment repository.
func NewAppointmentRepo(txm *postgres.TxManager) *AppointmentRepo {
	return &AppointmentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*appointment.Appointment](
			txm,
			appointmentsTable,
			postgres.ExtractDBColumns[appointment.Appointment](),
			func() *appointment.Appointment { return &appointment.Appointment{} },
		),
	}
}

// List retrieves appointments with filtering.
func (r *AppointmentRepo) List(ctx context.Context, f appointment.ListFilter) (domain.ListResult[*appointment.Appointment], error) {
	q := r.commonWhere(r.baseSelect(), f.ListFilter)

	if f.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *f.ClientID})
	}
	if f.VehicleID != nil {
		q = q.Where(squirrel.Eq{"vehicle_id": *f.VehicleID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.ScheduledFrom != nil {
		q = q.Where(squirrel.GtOrEq{"scheduled_at": *f.ScheduledFrom})
	}
	if f.ScheduledTo != nil {
		q = q.Where(squirrel.Lt{"scheduled_at": *f.ScheduledTo})
	}

	if f.OrderBy == "" {
		f.OrderBy = "scheduled_at"
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
