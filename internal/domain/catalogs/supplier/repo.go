package supplier

import (
	"context"

	"tallerpro/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// FindByNIT retrieves a supplier by tax ID (unique).
	FindByNIT(ctx context.Context, nit string) (*Supplier, error)
}
