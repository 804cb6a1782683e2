package invoice

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/domain/posting"
	"tallerpro/internal/domain/registers/stock"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// DefaultDueDays is the payment term applied when the caller does not
// specify one.
const DefaultDueDays = 30

// Service provides business operations for invoices.
type Service struct {
	repo          Repository
	quotes        quote.Repository
	workOrders    workorder.Repository
	stock         *stock.Service
	postingEngine *posting.Engine
	numerator     corenum.Generator
	txManager     tx.Manager
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	quotes quote.Repository,
	workOrders workorder.Repository,
	stockSvc *stock.Service,
	postingEngine *posting.Engine,
	num corenum.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		quotes:        quotes,
		workOrders:    workOrders,
		stock:         stockSvc,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// ConvertInput parameterizes quote-to-invoice conversion.
type ConvertInput struct {
	WorkOrderID id.ID
	QuoteIDs    []id.ID

	// DueDays overrides the default payment term when > 0
	DueDays int
}

// ConvertFromQuotes bills the approved items of the given quotes: it
// freezes an invoice snapshot, consumes billed parts from stock, marks the
// quotes Facturado and the work order Facturado, all atomically.
func (s *Service) ConvertFromQuotes(ctx context.Context, input ConvertInput) (*Invoice, error) {
	req := appctx.GetRequest(ctx)

	if len(input.QuoteIDs) == 0 {
		return nil, apperror.NewValidation("at least one quote is required").
			WithDetail("field", "quoteIds")
	}

	dueDays := input.DueDays
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}

	var inv *Invoice

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		wo, err := s.workOrders.GetForUpdate(ctx, input.WorkOrderID)
		if err != nil {
			return err
		}
		if wo.Status == workorder.StatusCancelado {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"Cancelled work order cannot be invoiced",
			).WithDetail("work_order_id", wo.ID.String())
		}

		quotes := make([]*quote.Quote, 0, len(input.QuoteIDs))
		for _, quoteID := range input.QuoteIDs {
			q, err := s.quotes.GetForUpdate(ctx, quoteID)
			if err != nil {
				return err
			}
			items, err := s.quotes.GetItems(ctx, quoteID)
			if err != nil {
				return err
			}
			q.Items = items

			if q.WorkOrderID != wo.ID {
				return apperror.NewValidation("quote belongs to another work order").
					WithDetail("quote_id", quoteID.String())
			}
			if err := q.CanInvoice(); err != nil {
				return err
			}
			quotes = append(quotes, q)
		}

		issueDate := req.Clock()
		inv = Build(
			wo.LocationID, wo.ID, wo.ClientID, wo.AdvisorID, wo.ClientName,
			issueDate, issueDate.AddDate(0, 0, dueDays), quotes,
		)
		inv.CreatedBy = req.UserID

		if err := inv.Validate(ctx); err != nil {
			return err
		}

		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, issueDate)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		inv.Number = number

		// Billed parts must be on hand at this branch.
		if err := s.reserveParts(ctx, inv); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if err := s.repo.SaveItems(ctx, inv.ID, inv.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}
		if err := s.repo.SaveQuoteIDs(ctx, inv.ID, inv.QuoteIDs); err != nil {
			return fmt.Errorf("save quote links: %w", err)
		}

		// Record stock expenses for billed parts
		if err := s.postingEngine.Post(ctx, inv, func(ctx context.Context) error {
			return s.repo.Update(ctx, inv)
		}); err != nil {
			return err
		}

		for _, q := range quotes {
			if err := q.MarkInvoiced(); err != nil {
				return err
			}
			if err := s.quotes.Update(ctx, q); err != nil {
				return fmt.Errorf("update quote %s: %w", q.Number, err)
			}
		}

		if err := wo.MarkInvoiced(); err != nil {
			return err
		}
		if err := s.workOrders.Update(ctx, wo); err != nil {
			return fmt.Errorf("update work order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created from quotes",
		"id", inv.ID,
		"number", inv.Number,
		"work_order_id", inv.WorkOrderID,
		"quotes", len(inv.QuoteIDs),
		"total", inv.TotalAmount)

	return inv, nil
}

func (s *Service) reserveParts(ctx context.Context, inv *Invoice) error {
	reservations := make([]stock.Reservation, 0, len(inv.Items))
	for _, it := range inv.Items {
		if it.Type != quote.ItemInventory || it.SuppliedByClient || it.ProductID == nil {
			continue
		}
		reservations = append(reservations, stock.Reservation{
			LocationID:  inv.LocationID,
			ProductID:   *it.ProductID,
			RequiredQty: it.Quantity,
		})
	}
	if len(reservations) == 0 {
		return nil
	}
	return s.stock.CheckAndReserveStock(ctx, reservations)
}

// GetByID retrieves an invoice with items and quote links.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Invoice, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.loadRelated(ctx, doc)
}

func (s *Service) loadRelated(ctx context.Context, doc *Invoice) (*Invoice, error) {
	items, err := s.repo.GetItems(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items

	quoteIDs, err := s.repo.GetQuoteIDs(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get quote links: %w", err)
	}
	doc.QuoteIDs = quoteIDs

	return doc, nil
}

// mutate applies op on a locked invoice and persists the header.
func (s *Service) mutate(ctx context.Context, docID id.ID, op func(doc *Invoice) error) (*Invoice, error) {
	var result *Invoice

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc, err = s.loadRelated(ctx, doc); err != nil {
			return err
		}

		if err := op(doc); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Pay records a direct client payment into the given account.
func (s *Service) Pay(ctx context.Context, docID, accountID id.ID) (*Invoice, error) {
	req := appctx.GetRequest(ctx)
	doc, err := s.mutate(ctx, docID, func(doc *Invoice) error {
		return doc.MarkPaid(accountID, req.Clock())
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice paid",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.TotalAmount)
	return doc, nil
}

// Cancel voids the invoice and returns its billed parts to stock.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Invoice, error) {
	var result *Invoice

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc, err = s.loadRelated(ctx, doc); err != nil {
			return err
		}

		if err := doc.Cancel(); err != nil {
			return err
		}

		// Reverse the stock expense movements
		if err := s.postingEngine.Unpost(ctx, doc, func(ctx context.Context) error {
			return s.repo.Update(ctx, doc)
		}); err != nil {
			return err
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice cancelled",
		"id", result.ID,
		"number", result.Number)

	return result, nil
}

// ApplyFactoring records a factoring operation on the invoice.
func (s *Service) ApplyFactoring(ctx context.Context, docID id.ID, info FactoringInfo) (*Invoice, error) {
	return s.mutate(ctx, docID, func(doc *Invoice) error {
		return doc.ApplyFactoring(info)
	})
}

// ReleaseRetention releases the held factoring retention (one-shot).
func (s *Service) ReleaseRetention(ctx context.Context, docID id.ID) (*Invoice, error) {
	req := appctx.GetRequest(ctx)
	return s.mutate(ctx, docID, func(doc *Invoice) error {
		return doc.ReleaseRetention(req.Clock())
	})
}

// SweepOverdue flags pending invoices past their due date as Vencida.
// Returns the number of invoices flagged.
func (s *Service) SweepOverdue(ctx context.Context, locationID *id.ID) (int, error) {
	req := appctx.GetRequest(ctx)
	today := req.Clock()

	candidates, err := s.repo.ListOverdueCandidates(ctx, locationID, today)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, doc := range candidates {
		_, err := s.mutate(ctx, doc.ID, func(doc *Invoice) error {
			if doc.Status != StatusPendiente || !today.After(doc.DueDate) {
				return nil // re-check under lock; skip silently
			}
			return doc.MarkOverdue(today)
		})
		if err != nil {
			logger.Warn(ctx, "overdue sweep failed for invoice",
				"id", doc.ID, "error", err)
			continue
		}
		flagged++
	}

	if flagged > 0 {
		logger.Info(ctx, "overdue sweep finished", "flagged", flagged)
	}
	return flagged, nil
}

// ListByWorkOrder retrieves all invoices of one work order.
func (s *Service) ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*Invoice, error) {
	invoices, err := s.repo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if _, err := s.loadRelated(ctx, inv); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// List retrieves invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
