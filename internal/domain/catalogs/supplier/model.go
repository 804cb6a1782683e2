// Package supplier provides the Supplier catalog (parts providers).
package supplier

import (
	"context"
	"regexp"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
)

var (
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Supplier represents a parts or services provider.
type Supplier struct {
	entity.Catalog

	// NIT is the Colombian tax ID (digits, without verification digit)
	NIT string `db:"nit" json:"nit"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the supplier address
	Address *string `db:"address" json:"address,omitempty"`

	// CreditDays is the agreed payment term for credit purchases
	CreditDays int `db:"credit_days" json:"creditDays"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(code, name, nit string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
		NIT:     nit,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.NIT != "" && !digitsOnlyRE.MatchString(s.NIT) {
		return apperror.NewValidation("NIT must contain only digits").
			WithDetail("field", "nit")
	}

	if s.Email != nil && *s.Email != "" && !emailRE.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if s.CreditDays < 0 {
		return apperror.NewValidation("credit days cannot be negative").
			WithDetail("field", "creditDays")
	}

	return nil
}
