package client

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

// Service provides business logic for the Client catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Client]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Client service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "client",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Client) error {
	if c.Code == "" {
		cfg := numerator.Config{Prefix: "CLI", PadWidth: 5, ResetPeriod: "never"}
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, appctx.Clock(ctx))
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkDocumentUnique(ctx, c)
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, c *Client) error {
	return s.checkDocumentUnique(ctx, c)
}

func (s *Service) checkDocumentUnique(ctx context.Context, c *Client) error {
	if c.DocumentNumber == "" {
		return nil
	}
	exists, err := s.documentExists(ctx, c.DocumentNumber, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflict("client with this document number already exists").
			WithDetail("documentNumber", c.DocumentNumber)
	}
	return nil
}

// FindByDocument retrieves a client by identity document number.
func (s *Service) FindByDocument(ctx context.Context, docNumber string) (*Client, error) {
	return s.repo.FindByDocument(ctx, docNumber)
}

// documentExists checks if the document number is already used by another client.
func (s *Service) documentExists(ctx context.Context, docNumber string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByDocument(ctx, docNumber)
	if err != nil {
		// Not found is OK; other errors must be propagated.
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
