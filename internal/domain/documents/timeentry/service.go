package timeentry

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides time clock operations.
type Service struct {
	repo      Repository
	staff     staff.Repository
	numerator corenum.Generator
	txManager tx.Manager
}

// NewService creates a new time entry service.
func NewService(repo Repository, staffRepo staff.Repository, num corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		staff:     staffRepo,
		numerator: num,
		txManager: txManager,
	}
}

// PunchIn opens a shift for the staff member. A staff member can have
// at most one open shift.
func (s *Service) PunchIn(ctx context.Context, staffID id.ID) (*TimeEntry, error) {
	req := appctx.GetRequest(ctx)

	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !member.Active {
		return nil, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Inactive staff member cannot punch in",
		).WithDetail("staff_id", staffID.String())
	}

	open, err := s.repo.GetOpenEntry(ctx, staffID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflict("staff member already has an open shift").
			WithDetail("entry_id", open.ID.String())
	}

	doc := NewTimeEntry(req.LocationID, staffID, req.Clock())
	doc.CreatedBy = req.UserID
	doc.Date = doc.ClockIn

	if err := doc.Validate(ctx); err != nil {
		return nil, err
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

	logger.Info(ctx, "shift opened",
		"id", doc.ID,
		"staff_id", staffID,
		"clock_in", doc.ClockIn)

	return doc, nil
}

// PunchOut closes the staff member's open shift.
func (s *Service) PunchOut(ctx context.Context, staffID id.ID) (*TimeEntry, error) {
	req := appctx.GetRequest(ctx)

	var result *TimeEntry

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetOpenEntry(ctx, staffID)
		if err != nil {
			return err
		}
		if err := doc.Close(req.Clock()); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "shift closed",
		"id", result.ID,
		"staff_id", staffID,
		"hours", result.Hours())

	return result, nil
}

// GetByID retrieves a time entry.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*TimeEntry, error) {
	return s.repo.GetByID(ctx, docID)
}

// List retrieves time entries with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*TimeEntry], error) {
	return s.repo.List(ctx, filter)
}
