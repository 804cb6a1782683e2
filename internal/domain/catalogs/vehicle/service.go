package vehicle

import (
	"context"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/client"
)

// Service provides business logic for the Vehicle catalog.
type Service struct {
	*domain.CatalogService[*Vehicle]
	repo    Repository
	clients client.Repository
}

// NewService creates a new Vehicle service.
func NewService(repo Repository, clients client.Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Vehicle]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "vehicle",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		clients:        clients,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForSave)
	base.Hooks().OnBeforeUpdate(svc.prepareForSave)

	return svc
}

// prepareForSave normalizes the plate, checks uniqueness and owner existence.
func (s *Service) prepareForSave(ctx context.Context, v *Vehicle) error {
	v.Plate = NormalizePlate(v.Plate)
	if v.Code == "" {
		v.Code = v.Plate
	}

	// Plate uniqueness
	exists, err := s.plateExists(ctx, v.Plate, v.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflict("vehicle with this plate already exists").
			WithDetail("plate", v.Plate)
	}

	// Owner must exist
	ok, err := s.clients.Exists(ctx, v.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewNotFound("client", v.ClientID.String())
	}

	return nil
}

// FindByPlate retrieves a vehicle by plate.
func (s *Service) FindByPlate(ctx context.Context, plate string) (*Vehicle, error) {
	return s.repo.FindByPlate(ctx, NormalizePlate(plate))
}

// ListByClient retrieves all vehicles of one client.
func (s *Service) ListByClient(ctx context.Context, clientID id.ID) ([]*Vehicle, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) plateExists(ctx context.Context, plate string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByPlate(ctx, plate)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
