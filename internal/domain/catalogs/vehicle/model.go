// Package vehicle provides the Vehicle catalog.
// Every work order is opened against one vehicle of one client.
package vehicle

import (
	"context"
	"regexp"
	"strings"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// Colombian plates: cars AAA123, motorcycles AAA12A.
var plateRE = regexp.MustCompile(`^[A-Z]{3}\d{2}[A-Z0-9]$`)

// VIN is 17 chars, excludes I, O, Q.
var vinRE = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// Vehicle represents a client's vehicle.
type Vehicle struct {
	entity.Catalog

	// ClientID references the owning client
	ClientID id.ID `db:"client_id" json:"clientId"`

	// Plate is the license plate, uppercase, no dashes (unique)
	Plate string `db:"plate" json:"plate"`

	// VIN is the vehicle identification number
	VIN *string `db:"vin" json:"vin,omitempty"`

	// Brand, Model, Year describe the vehicle
	Brand string `db:"brand" json:"brand"`
	Model string `db:"model" json:"model"`
	Year  int    `db:"year" json:"year"`

	// Color of the vehicle
	Color *string `db:"color" json:"color,omitempty"`

	// Mileage is the last recorded odometer reading (km)
	Mileage int `db:"mileage" json:"mileage"`
}

// NewVehicle creates a new Vehicle with required fields.
func NewVehicle(clientID id.ID, plate, brand, model string, year int) *Vehicle {
	plate = NormalizePlate(plate)
	return &Vehicle{
		Catalog:  entity.NewCatalog(plate, brand+" "+model+" "+plate),
		ClientID: clientID,
		Plate:    plate,
		Brand:    brand,
		Model:    model,
		Year:     year,
	}
}

// NormalizePlate uppercases and strips spaces/dashes from a plate.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(plate)
	plate = strings.ReplaceAll(plate, " ", "")
	return strings.ReplaceAll(plate, "-", "")
}

// Validate implements entity.Validatable interface.
func (v *Vehicle) Validate(ctx context.Context) error {
	if err := v.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(v.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if !plateRE.MatchString(v.Plate) {
		return apperror.NewValidation("invalid plate format").
			WithDetail("field", "plate").
			WithDetail("value", v.Plate)
	}

	if v.VIN != nil && *v.VIN != "" && !vinRE.MatchString(strings.ToUpper(*v.VIN)) {
		return apperror.NewValidation("invalid VIN (must be 17 characters)").
			WithDetail("field", "vin")
	}

	if v.Year != 0 && (v.Year < 1950 || v.Year > 2100) {
		return apperror.NewValidation("year out of range").
			WithDetail("field", "year")
	}

	if v.Mileage < 0 {
		return apperror.NewValidation("mileage cannot be negative").
			WithDetail("field", "mileage")
	}

	return nil
}
