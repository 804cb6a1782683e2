package loan

import (
	"context"
	"fmt"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for loans.
type Service struct {
	repo      Repository
	staff     staff.Repository
	numerator corenum.Generator
	txManager tx.Manager
}

// NewService creates a new loan service.
func NewService(repo Repository, staffRepo staff.Repository, num corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		staff:     staffRepo,
		numerator: num,
		txManager: txManager,
	}
}

// Create validates and persists a loan.
func (s *Service) Create(ctx context.Context, doc *Loan) (*Loan, error) {
	req := appctx.GetRequest(ctx)

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	if doc.StaffID != nil && !id.IsNil(*doc.StaffID) {
		if _, err := s.staff.GetByID(ctx, *doc.StaffID); err != nil {
			return nil, err
		}
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

	logger.Info(ctx, "loan created",
		"id", doc.ID,
		"number", doc.Number,
		"amount", doc.Amount)

	return doc, nil
}

// RegisterPayment records a repayment against a loan.
func (s *Service) RegisterPayment(ctx context.Context, loanID, accountID id.ID, amount types.Money, notes string) (*Loan, error) {
	req := appctx.GetRequest(ctx)

	var result *Loan

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		payments, err := s.repo.GetPayments(ctx, loanID)
		if err != nil {
			return fmt.Errorf("get payments: %w", err)
		}
		doc.Payments = payments

		p, err := doc.RegisterPayment(req.Clock(), amount, accountID, notes)
		if err != nil {
			return err
		}
		if err := s.repo.AddPayment(ctx, *p); err != nil {
			return fmt.Errorf("add payment: %w", err)
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "loan payment registered",
		"loan_id", result.ID,
		"amount", amount,
		"outstanding", result.Outstanding())

	return result, nil
}

// GetByID retrieves a loan with its payments.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Loan, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.GetPayments(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}
	doc.Payments = payments

	return doc, nil
}

// List retrieves loans with filtering, payments loaded so callers can
// display outstanding balances.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Loan], error) {
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}
	for _, doc := range result.Items {
		payments, err := s.repo.GetPayments(ctx, doc.ID)
		if err != nil {
			return result, fmt.Errorf("get payments: %w", err)
		}
		doc.Payments = payments
	}
	return result, nil
}
