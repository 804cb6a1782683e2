// Package product provides the Product catalog: everything the workshop
// sells, either labor (services) or stocked spare parts.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/types"
)

// Kind defines the product kind.
type Kind string

const (
	KindService Kind = "service" // Mano de obra, no stock
	KindPart    Kind = "part"    // Repuesto, stock-tracked
)

// Product represents a sellable catalog entry.
type Product struct {
	entity.Catalog

	// Kind is service or part
	Kind Kind `db:"kind" json:"kind"`

	// SalePrice in COP per unit
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// CostPrice in COP per unit; meaningful for parts only
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// TaxRate is the IVA as a whole percent (19 = 19%)
	TaxRate types.Percent `db:"tax_rate" json:"taxRate"`

	// Barcode for parts scanning
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// MinStock triggers reorder alerts for parts
	MinStock types.Quantity `db:"min_stock" json:"minStock"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, kind Kind, salePrice types.Money) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		Kind:      kind,
		SalePrice: salePrice,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch p.Kind {
	case KindService, KindPart:
	default:
		return apperror.NewValidation("invalid product kind").
			WithDetail("field", "kind").
			WithDetail("value", string(p.Kind))
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price cannot be negative").
			WithDetail("field", "costPrice")
	}

	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "taxRate")
	}

	return nil
}

// TracksStock returns true if the product participates in the stock register.
func (p *Product) TracksStock() bool {
	return p.Kind == KindPart
}
