package account

import (
	"context"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
)

// Service provides business logic for the FinancialAccount catalog.
type Service struct {
	*domain.CatalogService[*FinancialAccount]
	repo Repository
}

// NewService creates a new FinancialAccount service.
func NewService(repo Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*FinancialAccount]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "financial_account",
	})
	return &Service{CatalogService: base, repo: repo}
}

// ListByLocation retrieves accounts of one branch.
func (s *Service) ListByLocation(ctx context.Context, locationID id.ID) ([]*FinancialAccount, error) {
	return s.repo.ListByLocation(ctx, locationID)
}
