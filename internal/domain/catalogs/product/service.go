package product

import (
	"context"
	"fmt"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		prefix := "SRV"
		if p.Kind == KindPart {
			prefix = "REP"
		}
		cfg := numerator.Config{Prefix: prefix, PadWidth: 5, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, appctx.Clock(ctx))
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}
	return nil
}

// FindByBarcode retrieves a product by barcode.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}
