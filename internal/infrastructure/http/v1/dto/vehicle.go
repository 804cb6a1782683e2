package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/vehicle"
)

// CreateVehicleRequest is the request body for registering a vehicle.
type CreateVehicleRequest struct {
	ClientID id.ID   `json:"clientId" binding:"required"`
	Plate    string  `json:"plate" binding:"required"`
	VIN      *string `json:"vin"`
	Brand    string  `json:"brand" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	Year     int     `json:"year"`
	Color    *string `json:"color"`
	Mileage  int     `json:"mileage"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVehicleRequest) ToEntity() *vehicle.Vehicle {
	v := vehicle.NewVehicle(r.ClientID, r.Plate, r.Brand, r.Model, r.Year)
	v.VIN = r.VIN
	v.Color = r.Color
	v.Mileage = r.Mileage
	return v
}

// UpdateVehicleRequest is the request body for updating a vehicle.
type UpdateVehicleRequest struct {
	ClientID id.ID   `json:"clientId" binding:"required"`
	Plate    string  `json:"plate" binding:"required"`
	VIN      *string `json:"vin"`
	Brand    string  `json:"brand" binding:"required"`
	Model    string  `json:"model" binding:"required"`
	Year     int     `json:"year"`
	Color    *string `json:"color"`
	Mileage  int     `json:"mileage"`
	Version  int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateVehicleRequest) ApplyTo(v *vehicle.Vehicle) {
	v.ClientID = r.ClientID
	v.Plate = vehicle.NormalizePlate(r.Plate)
	v.VIN = r.VIN
	v.Brand = r.Brand
	v.Model = r.Model
	v.Year = r.Year
	v.Color = r.Color
	v.Mileage = r.Mileage
	v.Version = r.Version
}
