package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/documents/workorder"
)

// CreateWorkOrderRequest opens a work order at reception.
type CreateWorkOrderRequest struct {
	ClientID  id.ID `json:"clientId" binding:"required"`
	VehicleID id.ID `json:"vehicleId" binding:"required"`
	AdvisorID id.ID `json:"advisorId" binding:"required"`

	// Mileage is the odometer reading at reception (km)
	Mileage int `json:"mileage"`

	ReportedIssue string `json:"reportedIssue" binding:"required"`
	Comment       string `json:"comment,omitempty"`
}

// ToInput converts the request to the service input.
func (r *CreateWorkOrderRequest) ToInput() workorder.CreateInput {
	return workorder.CreateInput{
		ClientID:      r.ClientID,
		VehicleID:     r.VehicleID,
		AdvisorID:     r.AdvisorID,
		Mileage:       r.Mileage,
		ReportedIssue: r.ReportedIssue,
		Comment:       r.Comment,
	}
}

// StageTransitionRequest moves a work order along the Kanban board.
// ExpectedStage guards against acting on a stale board.
type StageTransitionRequest struct {
	ExpectedStage workorder.Stage `json:"expectedStage" binding:"required"`
	Notes         string          `json:"notes,omitempty"`
}

// CancelWorkOrderRequest voids a work order.
type CancelWorkOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignTechnicianRequest puts a technician on the order.
type AssignTechnicianRequest struct {
	StaffID id.ID `json:"staffId" binding:"required"`
}

// WaitingPartsRequest flags the order as blocked on parts.
type WaitingPartsRequest struct {
	Waiting bool `json:"waiting"`
}
