package dto

import (
	"tallerpro/internal/domain/catalogs/location"
)

// CreateLocationRequest is the request body for opening a branch.
type CreateLocationRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	City    string  `json:"city" binding:"required"`
	Phone   *string `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLocationRequest) ToEntity() *location.Location {
	l := location.NewLocation(r.Code, r.Name, r.City)
	l.Address = r.Address
	l.Phone = r.Phone
	return l
}

// UpdateLocationRequest is the request body for updating a branch.
type UpdateLocationRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	City    string  `json:"city" binding:"required"`
	Phone   *string `json:"phone"`
	Active  bool    `json:"active"`
	Version int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLocationRequest) ApplyTo(l *location.Location) {
	l.Code = r.Code
	l.Name = r.Name
	l.Address = r.Address
	l.City = r.City
	l.Phone = r.Phone
	l.Active = r.Active
	l.Version = r.Version
}
