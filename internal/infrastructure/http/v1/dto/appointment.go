package dto

import (
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/documents/appointment"
)

// CreateAppointmentRequest schedules a client visit.
type CreateAppointmentRequest struct {
	ClientID    id.ID     `json:"clientId" binding:"required"`
	VehicleID   id.ID     `json:"vehicleId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`

	Reason  string `json:"reason,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreateAppointmentRequest) ToEntity(locationID id.ID) *appointment.Appointment {
	a := appointment.NewAppointment(locationID, r.ClientID, r.VehicleID, r.ScheduledAt)
	a.Reason = r.Reason
	a.Comment = r.Comment
	return a
}

// FulfillAppointmentRequest closes an appointment, optionally linking
// the work order opened at reception.
type FulfillAppointmentRequest struct {
	WorkOrderID *id.ID `json:"workOrderId"`
}
