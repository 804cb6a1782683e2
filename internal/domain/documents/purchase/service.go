package purchase

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/supplier"
	"tallerpro/internal/domain/posting"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for purchases.
type Service struct {
	repo          Repository
	suppliers     supplier.Repository
	postingEngine *posting.Engine
	numerator     corenum.Generator
	txManager     tx.Manager
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	suppliers supplier.Repository,
	postingEngine *posting.Engine,
	num corenum.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		suppliers:     suppliers,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// Create validates and persists a new purchase (unposted).
func (s *Service) Create(ctx context.Context, doc *Purchase) (*Purchase, error) {
	req := appctx.GetRequest(ctx)

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.suppliers.Exists(ctx, doc.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("check supplier: %w", err)
	}
	if !exists {
		return nil, apperror.NewNotFound("supplier", doc.SupplierID.String())
	}

	doc.CreatedBy = req.UserID
	if doc.Date.IsZero() {
		doc.Date = req.Clock()
	}

	cfg := numerator.DefaultConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	doc.Number = number

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase created",
		"id", doc.ID,
		"number", doc.Number,
		"supplier_id", doc.SupplierID,
		"total", doc.TotalAmount)

	return doc, nil
}

// Update replaces the document and its lines. Posted purchases must be
// unposted first.
func (s *Service) Update(ctx context.Context, doc *Purchase) (*Purchase, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, doc.ID)
		if err != nil {
			return err
		}
		if current.IsPosted() {
			return apperror.NewBusinessRule(
				apperror.CodeAlreadyPosted,
				"Posted purchase cannot be modified",
			).WithDetail("number", current.Number)
		}

		doc.Number = current.Number
		doc.PostedVersion = current.PostedVersion

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Post records the purchase's stock receipts at its branch.
func (s *Service) Post(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	err = s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase posted",
		"id", doc.ID,
		"number", doc.Number,
		"lines", len(doc.Lines))

	return doc, nil
}

// Unpost reverses the purchase's stock receipts.
func (s *Service) Unpost(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	err = s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase unposted", "id", doc.ID, "number", doc.Number)

	return doc, nil
}

// Delete removes an unposted purchase.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc.IsPosted() {
			return apperror.NewBusinessRule(
				apperror.CodeAlreadyPosted,
				"Posted purchase cannot be deleted",
			).WithDetail("number", doc.Number)
		}
		return s.repo.Delete(ctx, docID)
	})
}

// GetByID retrieves a purchase with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}
