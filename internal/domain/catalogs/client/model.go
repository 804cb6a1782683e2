// Package client provides the Client catalog.
// Clients are the vehicle owners the workshop bills.
package client

import (
	"context"
	"regexp"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
)

// Pre-compiled regex patterns for validation
var (
	whitespaceRE = regexp.MustCompile(`\s`)
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
	emailRE      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// DocumentType defines the identity document kind.
type DocumentType string

const (
	DocCedula   DocumentType = "cc"       // Cédula de ciudadanía
	DocNIT      DocumentType = "nit"      // NIT (empresas)
	DocCedulaEx DocumentType = "ce"       // Cédula de extranjería
	DocPassport DocumentType = "passport" // Pasaporte
)

// Client represents a workshop customer.
type Client struct {
	entity.Catalog

	// DocumentType is the identity document kind (cc, nit, ce, passport)
	DocumentType DocumentType `db:"document_type" json:"documentType"`

	// DocumentNumber is the identity document number (unique)
	DocumentNumber string `db:"document_number" json:"documentNumber"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the contact address
	Address *string `db:"address" json:"address,omitempty"`

	// City of residence
	City *string `db:"city" json:"city,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewClient creates a new Client with required fields.
func NewClient(code, name string, docType DocumentType, docNumber string) *Client {
	return &Client{
		Catalog:        entity.NewCatalog(code, name),
		DocumentType:   docType,
		DocumentNumber: docNumber,
	}
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidDocumentType(c.DocumentType) {
		return apperror.NewValidation("invalid document type").
			WithDetail("field", "documentType").
			WithDetail("value", string(c.DocumentType))
	}

	if c.DocumentNumber == "" {
		return apperror.NewValidation("document number is required").
			WithDetail("field", "documentNumber")
	}

	// Cédula and NIT are numeric documents
	if c.DocumentType == DocCedula || c.DocumentType == DocNIT {
		cleaned := whitespaceRE.ReplaceAllString(c.DocumentNumber, "")
		if !digitsOnlyRE.MatchString(cleaned) {
			return apperror.NewValidation("document number must contain only digits").
				WithDetail("field", "documentNumber")
		}
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

func isValidDocumentType(t DocumentType) bool {
	switch t {
	case DocCedula, DocNIT, DocCedulaEx, DocPassport:
		return true
	}
	return false
}
