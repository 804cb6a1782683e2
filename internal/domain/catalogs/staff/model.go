// Package staff provides the StaffMember catalog.
// Staff members are workshop employees: service advisors earn commissions on
// invoiced profit, technicians are assigned to work orders and clock hours.
package staff

import (
	"context"

	"github.com/shopspring/decimal"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

// Role defines the staff member role.
type Role string

const (
	RoleAdvisor    Role = "advisor"    // Asesor de servicio
	RoleTechnician Role = "technician" // Técnico
	RoleAdmin      Role = "admin"      // Administrador
)

// StaffMember represents a workshop employee.
type StaffMember struct {
	entity.Catalog

	// Role of the employee
	Role Role `db:"role" json:"role"`

	// LocationID is the home branch
	LocationID id.ID `db:"location_id" json:"locationId"`

	// DocumentNumber is the identity document (cédula)
	DocumentNumber string `db:"document_number" json:"documentNumber"`

	// CommissionRate is the advisor commission as a whole percent (10 = 10%)
	CommissionRate types.Percent `db:"commission_rate" json:"commissionRate"`

	// HourlyRate is the payroll rate in COP per hour
	HourlyRate types.Money `db:"hourly_rate" json:"hourlyRate"`

	// Phone is the contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Active is false for former employees (kept for history)
	Active bool `db:"active" json:"active"`
}

// NewStaffMember creates a new StaffMember with required fields.
func NewStaffMember(code, name string, role Role, locationID id.ID) *StaffMember {
	return &StaffMember{
		Catalog:    entity.NewCatalog(code, name),
		Role:       role,
		LocationID: locationID,
		Active:     true,
	}
}

// Validate implements entity.Validatable interface.
func (m *StaffMember) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch m.Role {
	case RoleAdvisor, RoleTechnician, RoleAdmin:
	default:
		return apperror.NewValidation("invalid staff role").
			WithDetail("field", "role").
			WithDetail("value", string(m.Role))
	}

	if id.IsNil(m.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}

	// Whole-number percent, 0..100
	if m.CommissionRate.IsNegative() || m.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("commission rate must be between 0 and 100").
			WithDetail("field", "commissionRate")
	}

	if m.HourlyRate.IsNegative() {
		return apperror.NewValidation("hourly rate cannot be negative").
			WithDetail("field", "hourlyRate")
	}

	return nil
}

// IsAdvisor returns true if the member earns sales commissions.
func (m *StaffMember) IsAdvisor() bool {
	return m.Role == RoleAdvisor
}

// IsTechnician returns true if the member can be assigned to work orders.
func (m *StaffMember) IsTechnician() bool {
	return m.Role == RoleTechnician
}
