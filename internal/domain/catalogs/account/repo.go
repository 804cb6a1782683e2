package account

import (
	"context"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines the interface for FinancialAccount persistence.
type Repository interface {
	domain.CatalogRepository[*FinancialAccount]

	// ListByLocation retrieves accounts of one branch.
	ListByLocation(ctx context.Context, locationID id.ID) ([]*FinancialAccount, error)
}
