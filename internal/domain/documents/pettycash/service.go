package pettycash

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/account"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for petty cash transactions.
type Service struct {
	repo      Repository
	accounts  account.Repository
	numerator corenum.Generator
	txManager tx.Manager
}

// NewService creates a new petty cash service.
func NewService(repo Repository, accounts account.Repository, num corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		numerator: num,
		txManager: txManager,
	}
}

// Create validates and persists a transaction.
func (s *Service) Create(ctx context.Context, doc *Transaction) (*Transaction, error) {
	req := appctx.GetRequest(ctx)

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	acc, err := s.accounts.GetByID(ctx, doc.AccountID)
	if err != nil {
		return nil, err
	}
	if !acc.Active {
		return nil, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Account is inactive",
		).WithDetail("account_id", acc.ID.String())
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
		return s.repo.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "petty cash transaction created",
		"id", doc.ID,
		"number", doc.Number,
		"type", doc.Type,
		"amount", doc.Amount)

	return doc, nil
}

// Update replaces a transaction's data.
func (s *Service) Update(ctx context.Context, doc *Transaction) (*Transaction, error) {
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, doc.ID)
		if err != nil {
			return err
		}
		doc.Number = current.Number
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, docID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
}

// GetByID retrieves a transaction.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Transaction, error) {
	return s.repo.GetByID(ctx, docID)
}

// List retrieves transactions with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error) {
	return s.repo.List(ctx, filter)
}
