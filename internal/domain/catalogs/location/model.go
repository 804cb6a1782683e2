// Package location provides the Location catalog (workshop branches, "sedes").
// Every document carries the LocationID it belongs to; reports are filtered
// by location.
package location

import (
	"context"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
)

// Location represents a workshop branch.
type Location struct {
	entity.Catalog

	// Address of the branch
	Address string `db:"address" json:"address"`

	// City where the branch operates
	City string `db:"city" json:"city"`

	// Phone is the branch contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Active is false for closed branches (kept for history)
	Active bool `db:"active" json:"active"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(code, name, city string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(code, name),
		City:    city,
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if l.City == "" {
		return apperror.NewValidation("city is required").
			WithDetail("field", "city")
	}

	return nil
}
