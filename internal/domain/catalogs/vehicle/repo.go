package vehicle

import (
	"context"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines the interface for Vehicle persistence.
type Repository interface {
	domain.CatalogRepository[*Vehicle]

	// FindByPlate retrieves a vehicle by normalized plate (unique).
	FindByPlate(ctx context.Context, plate string) (*Vehicle, error)

	// ListByClient retrieves all vehicles of one client.
	ListByClient(ctx context.Context, clientID id.ID) ([]*Vehicle, error)
}
