package dto

import (
	"tallerpro/internal/core/id"
)

// PunchRequest clocks a staff member in or out.
type PunchRequest struct {
	StaffID id.ID `json:"staffId" binding:"required"`
}
