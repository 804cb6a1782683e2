package supplier

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/pkg/numerator"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Supplier service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkNITUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, sp *Supplier) error {
	if sp.Code == "" {
		cfg := numerator.Config{Prefix: "PROV", PadWidth: 4, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, appctx.Clock(ctx))
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		sp.Code = code
	}
	return s.checkNITUnique(ctx, sp)
}

func (s *Service) checkNITUnique(ctx context.Context, sp *Supplier) error {
	if sp.NIT == "" {
		return nil
	}
	exists, err := s.nitExists(ctx, sp.NIT, sp.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflict("supplier with this NIT already exists").
			WithDetail("nit", sp.NIT)
	}
	return nil
}

// FindByNIT retrieves a supplier by tax ID.
func (s *Service) FindByNIT(ctx context.Context, nit string) (*Supplier, error) {
	return s.repo.FindByNIT(ctx, nit)
}

func (s *Service) nitExists(ctx context.Context, nit string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByNIT(ctx, nit)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
