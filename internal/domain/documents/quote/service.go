package quote

import (
	"context"
	"fmt"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for quotes.
type Service struct {
	repo       Repository
	workOrders workorder.Repository
	numerator  corenum.Generator
	txManager  tx.Manager
	hooks      *domain.HookRegistry[*Quote]
}

// NewService creates a new quote service.
func NewService(
	repo Repository,
	workOrders workorder.Repository,
	num corenum.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:       repo,
		workOrders: workOrders,
		numerator:  num,
		txManager:  txManager,
		hooks:      domain.NewHookRegistry[*Quote](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Quote] {
	return s.hooks
}

// Create drafts a quote and links it to its work order.
func (s *Service) Create(ctx context.Context, doc *Quote) error {
	req := appctx.GetRequest(ctx)

	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, req.Clock())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}
	doc.CreatedBy = req.UserID

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
			return fmt.Errorf("save items: %w", err)
		}

		// Register the quote on its work order
		wo, err := s.workOrders.GetForUpdate(ctx, doc.WorkOrderID)
		if err != nil {
			return err
		}
		quoteIDs, err := s.workOrders.GetLinkedQuoteIDs(ctx, wo.ID)
		if err != nil {
			return err
		}
		wo.LinkedQuoteIDs = quoteIDs
		wo.LinkQuote(doc.ID)
		return s.workOrders.SaveLinkedQuoteIDs(ctx, wo.ID, wo.LinkedQuoteIDs)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "quote created",
		"id", doc.ID,
		"number", doc.Number,
		"work_order_id", doc.WorkOrderID)

	return nil
}

// GetByID retrieves a quote with its items.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quote, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItems(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	doc.Items = items

	return doc, nil
}

// Update saves a draft quote. Sent or decided quotes are immutable.
func (s *Service) Update(ctx context.Context, doc *Quote) error {
	if doc.Status != StatusBorrador {
		return fmt.Errorf("update quote: only drafts can be edited (status %s)", doc.Status)
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return s.repo.SaveItems(ctx, doc.ID, doc.Items)
	})
}

// mutate applies op under a row lock and persists the result.
func (s *Service) mutate(ctx context.Context, docID id.ID, saveItems bool, op func(doc *Quote) error) (*Quote, error) {
	var result *Quote

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		items, err := s.repo.GetItems(ctx, docID)
		if err != nil {
			return err
		}
		doc.Items = items

		if err := op(doc); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if saveItems {
			if err := s.repo.SaveItems(ctx, doc.ID, doc.Items); err != nil {
				return fmt.Errorf("save items: %w", err)
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

// Send marks the quote as sent to the client.
func (s *Service) Send(ctx context.Context, docID id.ID) (*Quote, error) {
	return s.mutate(ctx, docID, false, func(doc *Quote) error {
		return doc.Send()
	})
}

// MarkReviewed records that the client reviewed the quote.
func (s *Service) MarkReviewed(ctx context.Context, docID id.ID) (*Quote, error) {
	return s.mutate(ctx, docID, false, func(doc *Quote) error {
		return doc.MarkReviewed()
	})
}

// Approve records the client decision with per-item selection.
func (s *Service) Approve(ctx context.Context, docID id.ID, approvedLineIDs []id.ID) (*Quote, error) {
	doc, err := s.mutate(ctx, docID, true, func(doc *Quote) error {
		return doc.Approve(approvedLineIDs)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "quote decided",
		"id", doc.ID,
		"number", doc.Number,
		"status", doc.Status,
		"approved_items", len(doc.ApprovedItems()))
	return doc, nil
}

// Reject declines the whole quote.
func (s *Service) Reject(ctx context.Context, docID id.ID) (*Quote, error) {
	return s.mutate(ctx, docID, false, func(doc *Quote) error {
		return doc.Reject()
	})
}

// ListByWorkOrder retrieves all quotes of one work order, with items.
func (s *Service) ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*Quote, error) {
	quotes, err := s.repo.ListByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		items, err := s.repo.GetItems(ctx, q.ID)
		if err != nil {
			return nil, fmt.Errorf("get items for %s: %w", q.Number, err)
		}
		q.Items = items
	}
	return quotes, nil
}

// List retrieves quotes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quote], error) {
	return s.repo.List(ctx, filter)
}
