package appointment

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/client"
	"tallerpro/internal/domain/catalogs/vehicle"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for appointments.
type Service struct {
	repo      Repository
	clients   client.Repository
	vehicles  vehicle.Repository
	numerator corenum.Generator
	txManager tx.Manager
}

// NewService creates a new appointment service.
func NewService(
	repo Repository,
	clients client.Repository,
	vehicles vehicle.Repository,
	num corenum.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		clients:   clients,
		vehicles:  vehicles,
		numerator: num,
		txManager: txManager,
	}
}

// Create schedules an appointment.
func (s *Service) Create(ctx context.Context, doc *Appointment) (*Appointment, error) {
	req := appctx.GetRequest(ctx)

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	veh, err := s.vehicles.GetByID(ctx, doc.VehicleID)
	if err != nil {
		return nil, err
	}
	if veh.ClientID != doc.ClientID {
		return nil, apperror.NewValidation("vehicle belongs to another client").
			WithDetail("vehicle_id", doc.VehicleID.String())
	}
	if _, err := s.clients.GetByID(ctx, doc.ClientID); err != nil {
		return nil, err
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

	logger.Info(ctx, "appointment scheduled",
		"id", doc.ID,
		"number", doc.Number,
		"scheduled_at", doc.ScheduledAt)

	return doc, nil
}

// mutate applies op on a locked appointment and persists it.
func (s *Service) mutate(ctx context.Context, docID id.ID, op func(doc *Appointment) error) (*Appointment, error) {
	var result *Appointment

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if err := op(doc); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Confirm marks the appointment confirmed.
func (s *Service) Confirm(ctx context.Context, docID id.ID) (*Appointment, error) {
	return s.mutate(ctx, docID, func(doc *Appointment) error {
		return doc.Confirm()
	})
}

// Fulfill closes the appointment, linking the opened work order.
func (s *Service) Fulfill(ctx context.Context, docID id.ID, workOrderID *id.ID) (*Appointment, error) {
	return s.mutate(ctx, docID, func(doc *Appointment) error {
		return doc.Fulfill(workOrderID)
	})
}

// Cancel voids the appointment.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Appointment, error) {
	return s.mutate(ctx, docID, func(doc *Appointment) error {
		return doc.Cancel()
	})
}

// GetByID retrieves an appointment.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Appointment, error) {
	return s.repo.GetByID(ctx, docID)
}

// List retrieves appointments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Appointment], error) {
	return s.repo.List(ctx, filter)
}
