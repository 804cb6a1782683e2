// Package appointment provides the Appointment document (cita): a
// scheduled reception slot that may later become a work order.
package appointment

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// Status of an appointment.
type Status string

const (
	StatusProgramada Status = "programada"
	StatusConfirmada Status = "confirmada"
	StatusCumplida   Status = "cumplida"
	StatusCancelada  Status = "cancelada"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCumplida || s == StatusCancelada
}

// Appointment represents a scheduled client visit.
type Appointment struct {
	entity.Document

	ClientID  id.ID `db:"client_id" json:"clientId"`
	VehicleID id.ID `db:"vehicle_id" json:"vehicleId"`

	ScheduledAt time.Time `db:"scheduled_at" json:"scheduledAt"`

	Status Status `db:"status" json:"status"`

	Reason string `db:"reason" json:"reason,omitempty"`

	// WorkOrderID links the appointment to the work order opened at
	// reception
	WorkOrderID *id.ID `db:"work_order_id" json:"workOrderId,omitempty"`
}

// NewAppointment schedules a visit.
func NewAppointment(locationID, clientID, vehicleID id.ID, scheduledAt time.Time) *Appointment {
	return &Appointment{
		Document:    entity.NewDocument(locationID),
		ClientID:    clientID,
		VehicleID:   vehicleID,
		ScheduledAt: scheduledAt,
		Status:      StatusProgramada,
	}
}

func (a *Appointment) guardTerminal() error {
	if a.Status.IsTerminal() {
		return apperror.NewInvalidTransition(string(a.Status), "").
			WithDetail("appointment_id", a.ID.String())
	}
	return nil
}

// Confirm marks the appointment as confirmed by the client.
func (a *Appointment) Confirm() error {
	if err := a.guardTerminal(); err != nil {
		return err
	}
	a.Status = StatusConfirmada
	return nil
}

// Fulfill closes the appointment, optionally linking the work order
// opened from it.
func (a *Appointment) Fulfill(workOrderID *id.ID) error {
	if err := a.guardTerminal(); err != nil {
		return err
	}
	a.Status = StatusCumplida
	a.WorkOrderID = workOrderID
	return nil
}

// Cancel voids the appointment.
func (a *Appointment) Cancel() error {
	if err := a.guardTerminal(); err != nil {
		return err
	}
	a.Status = StatusCancelada
	return nil
}

// Validate implements entity.Validatable.
func (a *Appointment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if id.IsNil(a.VehicleID) {
		return apperror.NewValidation("vehicle is required").
			WithDetail("field", "vehicleId")
	}
	if a.ScheduledAt.IsZero() {
		return apperror.NewValidation("scheduled time is required").
			WithDetail("field", "scheduledAt")
	}

	switch a.Status {
	case StatusProgramada, StatusConfirmada, StatusCumplida, StatusCancelada:
	default:
		return apperror.NewValidation("invalid appointment status").
			WithDetail("field", "status").
			WithDetail("value", string(a.Status))
	}

	return nil
}
