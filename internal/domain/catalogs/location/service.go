package location

import (
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
)

// Service provides business logic for the Location catalog.
// Locations have no entity-specific rules beyond base CRUD.
type Service struct {
	*domain.CatalogService[*Location]
}

// NewService creates a new Location service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "location",
	})
	return &Service{CatalogService: base}
}
