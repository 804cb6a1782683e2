package workorder

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

// Service provides business operations for work orders.
type Service struct {
	repo      Repository
	clients   client.Repository
	vehicles  vehicle.Repository
	numerator corenum.Generator
	txManager tx.Manager
	files     FileStore
	hooks     *domain.HookRegistry[*WorkOrder]
}

// NewService creates a new work order service.
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
		hooks:     domain.NewHookRegistry[*WorkOrder](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*WorkOrder] {
	return s.hooks
}

// CreateInput carries the reception form data.
type CreateInput struct {
	ClientID      id.ID
	VehicleID     id.ID
	AdvisorID     id.ID
	Mileage       int
	ReportedIssue string
	Comment       string
}

// Create opens a work order at the Recepción stage, snapshotting client
// and vehicle data as of reception time.
func (s *Service) Create(ctx context.Context, input CreateInput) (*WorkOrder, error) {
	req := appctx.GetRequest(ctx)

	cl, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	veh, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if veh.ClientID != cl.ID {
		return nil, apperror.NewValidation("vehicle does not belong to the client").
			WithDetail("vehicleId", veh.ID.String()).
			WithDetail("clientId", cl.ID.String())
	}

	doc := NewWorkOrder(req.LocationID, cl.ID, veh.ID, input.AdvisorID, req.UserID, req.Clock())
	doc.ClientName = cl.Name
	if cl.Phone != nil {
		doc.ClientPhone = *cl.Phone
	}
	doc.VehiclePlate = veh.Plate
	doc.VehicleDesc = fmt.Sprintf("%s %s %d", veh.Brand, veh.Model, veh.Year)
	doc.Mileage = input.Mileage
	doc.ReportedIssue = input.ReportedIssue
	doc.Comment = input.Comment
	doc.CreatedBy = req.UserID

	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return nil, err
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, req.Clock())
		if err != nil {
			return nil, fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.AppendHistory(ctx, doc.ID, doc.History); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "work order created",
		"id", doc.ID,
		"number", doc.Number,
		"plate", doc.VehiclePlate)

	return doc, nil
}

// GetByID retrieves a work order with its history and quote links.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*WorkOrder, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.loadRelated(ctx, doc)
}

func (s *Service) loadRelated(ctx context.Context, doc *WorkOrder) (*WorkOrder, error) {
	history, err := s.repo.GetHistory(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	doc.History = history

	quoteIDs, err := s.repo.GetLinkedQuoteIDs(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get quote links: %w", err)
	}
	doc.LinkedQuoteIDs = quoteIDs

	return doc, nil
}

// Update saves mutable header fields (diagnosis, mileage, comment).
// Stage transitions go through the dedicated operations below.
func (s *Service) Update(ctx context.Context, doc *WorkOrder) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
}

// transition loads the order with a row lock, applies op and persists the
// new history tail. All stage operations share this shape so the staleness
// guard and optimistic version check always run against fresh data.
func (s *Service) transition(ctx context.Context, docID id.ID, op func(doc *WorkOrder) error) (*WorkOrder, error) {
	var result *WorkOrder

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc, err = s.loadRelated(ctx, doc); err != nil {
			return err
		}

		before := len(doc.History)
		if err := op(doc); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if len(doc.History) > before {
			if err := s.repo.AppendHistory(ctx, doc.ID, doc.History[before:]); err != nil {
				return fmt.Errorf("append history: %w", err)
			}
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AdvanceStage moves the order to the next pipeline stage.
func (s *Service) AdvanceStage(ctx context.Context, docID id.ID, expected Stage, notes string) (*WorkOrder, error) {
	req := appctx.GetRequest(ctx)
	doc, err := s.transition(ctx, docID, func(doc *WorkOrder) error {
		return doc.Advance(expected, req.UserID, notes, req.Clock())
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "work order advanced",
		"id", doc.ID,
		"number", doc.Number,
		"stage", doc.Stage())
	return doc, nil
}

// RetreatStage moves the order one stage back.
func (s *Service) RetreatStage(ctx context.Context, docID id.ID, expected Stage, notes string) (*WorkOrder, error) {
	req := appctx.GetRequest(ctx)
	return s.transition(ctx, docID, func(doc *WorkOrder) error {
		return doc.Retreat(expected, req.UserID, notes, req.Clock())
	})
}

// RequireAttention branches the order to Atención Requerida.
func (s *Service) RequireAttention(ctx context.Context, docID id.ID, expected Stage, notes string) (*WorkOrder, error) {
	req := appctx.GetRequest(ctx)
	return s.transition(ctx, docID, func(doc *WorkOrder) error {
		return doc.RequireAttention(expected, req.UserID, notes, req.Clock())
	})
}

// CancelOrder cancels the order with a reason.
func (s *Service) CancelOrder(ctx context.Context, docID id.ID, reason string) (*WorkOrder, error) {
	req := appctx.GetRequest(ctx)
	doc, err := s.transition(ctx, docID, func(doc *WorkOrder) error {
		return doc.Cancel(reason, req.UserID, req.Clock())
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "work order cancelled",
		"id", doc.ID,
		"number", doc.Number,
		"reason", reason)
	return doc, nil
}

// AssignTechnician assigns a technician without changing the stage.
func (s *Service) AssignTechnician(ctx context.Context, docID id.ID, staffID id.ID) (*WorkOrder, error) {
	return s.transition(ctx, docID, func(doc *WorkOrder) error {
		return doc.AssignTechnician(staffID)
	})
}

// SetWaitingParts toggles the espera-repuestos status.
func (s *Service) SetWaitingParts(ctx context.Context, docID id.ID, waiting bool) (*WorkOrder, error) {
	return s.transition(ctx, docID, func(doc *WorkOrder) error {
		doc.SetWaitingParts(waiting)
		return nil
	})
}

// List retrieves work orders with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*WorkOrder], error) {
	return s.repo.List(ctx, filter)
}
