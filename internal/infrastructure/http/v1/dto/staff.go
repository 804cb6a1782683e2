package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/catalogs/staff"
)

// CreateStaffRequest is the request body for hiring a staff member.
type CreateStaffRequest struct {
	Code           string        `json:"code"`
	Name           string        `json:"name" binding:"required"`
	Role           staff.Role    `json:"role" binding:"required"`
	LocationID     id.ID         `json:"locationId" binding:"required"`
	DocumentNumber string        `json:"documentNumber"`
	CommissionRate types.Percent `json:"commissionRate"`
	HourlyRate     types.Money   `json:"hourlyRate"`
	Phone          *string       `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStaffRequest) ToEntity() *staff.StaffMember {
	m := staff.NewStaffMember(r.Code, r.Name, r.Role, r.LocationID)
	m.DocumentNumber = r.DocumentNumber
	m.CommissionRate = r.CommissionRate
	m.HourlyRate = r.HourlyRate
	m.Phone = r.Phone
	return m
}

// UpdateStaffRequest is the request body for updating a staff member.
type UpdateStaffRequest struct {
	Code           string        `json:"code"`
	Name           string        `json:"name" binding:"required"`
	Role           staff.Role    `json:"role" binding:"required"`
	LocationID     id.ID         `json:"locationId" binding:"required"`
	DocumentNumber string        `json:"documentNumber"`
	CommissionRate types.Percent `json:"commissionRate"`
	HourlyRate     types.Money   `json:"hourlyRate"`
	Phone          *string       `json:"phone"`
	Active         bool          `json:"active"`
	Version        int           `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateStaffRequest) ApplyTo(m *staff.StaffMember) {
	m.Code = r.Code
	m.Name = r.Name
	m.Role = r.Role
	m.LocationID = r.LocationID
	m.DocumentNumber = r.DocumentNumber
	m.CommissionRate = r.CommissionRate
	m.HourlyRate = r.HourlyRate
	m.Phone = r.Phone
	m.Active = r.Active
	m.Version = r.Version
}
