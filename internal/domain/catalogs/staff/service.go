package staff

import (
	"context"
	"fmt"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/pkg/numerator"
)

// Service provides business logic for the StaffMember catalog.
type Service struct {
	*domain.CatalogService[*StaffMember]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new StaffMember service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*StaffMember]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "staff_member",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, m *StaffMember) error {
	if m.Code == "" {
		cfg := numerator.Config{Prefix: "EMP", PadWidth: 4, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, appctx.Clock(ctx))
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		m.Code = code
	}
	return nil
}

// ListByLocation retrieves active staff of one branch.
func (s *Service) ListByLocation(ctx context.Context, locationID id.ID, role *Role) ([]*StaffMember, error) {
	return s.repo.ListByLocation(ctx, locationID, role)
}
