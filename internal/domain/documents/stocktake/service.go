package stocktake

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/id"
	corenum "tallerpro/internal/core/numerator"
	"tallerpro/internal/core/tx"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/posting"
	"tallerpro/internal/domain/registers/stock"
	"tallerpro/pkg/logger"
	"tallerpro/pkg/numerator"
)

// Service provides business operations for physical counts.
type Service struct {
	repo          Repository
	stockService  *stock.Service
	postingEngine *posting.Engine
	numerator     corenum.Generator
	txManager     tx.Manager
}

// NewService creates a new stocktake service.
func NewService(
	repo Repository,
	stockService *stock.Service,
	postingEngine *posting.Engine,
	num corenum.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		stockService:  stockService,
		postingEngine: postingEngine,
		numerator:     num,
		txManager:     txManager,
	}
}

// Create validates and persists a new draft count.
func (s *Service) Create(ctx context.Context, doc *Stocktake) (*Stocktake, error) {
	req := appctx.GetRequest(ctx)

	if err := doc.Validate(ctx); err != nil {
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
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create stocktake: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stocktake created",
		"id", doc.ID,
		"number", doc.Number,
		"location_id", doc.LocationID)

	return doc, nil
}

// PrepareSheet fills a draft count with the current register balances
// of its branch. Lines are replaced wholesale.
func (s *Service) PrepareSheet(ctx context.Context, docID id.ID) (*Stocktake, error) {
	var doc *Stocktake
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if doc.Status != StatusBorrador {
			return apperror.NewBusinessRule(
				"STOCKTAKE_NOT_DRAFT",
				"Sheet can only be prepared while in draft",
			).WithDetail("status", string(doc.Status))
		}

		balances, err := s.stockService.GetLocationStock(ctx, doc.LocationID)
		if err != nil {
			return fmt.Errorf("get branch stock: %w", err)
		}

		doc.Lines = doc.Lines[:0]
		for _, b := range balances {
			// Unit costs are filled in by the back office before completing.
			doc.AddLine(b.ProductID, b.Quantity, types.Zero())
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update stocktake: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stocktake sheet prepared",
		"id", doc.ID,
		"number", doc.Number,
		"lines", len(doc.Lines))

	return doc, nil
}

// Start freezes the sheet and opens counting.
func (s *Service) Start(ctx context.Context, docID id.ID) (*Stocktake, error) {
	return s.mutate(ctx, docID, func(doc *Stocktake) error {
		return doc.Start()
	})
}

// RecordCount stores one counted quantity. The acting user is recorded
// on the line.
func (s *Service) RecordCount(ctx context.Context, docID id.ID, lineNo int, countedQty types.Quantity) (*Stocktake, error) {
	req := appctx.GetRequest(ctx)

	return s.mutate(ctx, docID, func(doc *Stocktake) error {
		if doc.Status != StatusEnConteo {
			return apperror.NewBusinessRule(
				"STOCKTAKE_NOT_IN_PROGRESS",
				"Counts can only be recorded while in progress",
			).WithDetail("status", string(doc.Status))
		}
		return doc.RecordCount(lineNo, countedQty, req.UserID, req.Clock())
	})
}

// Complete closes the count once every line is counted.
func (s *Service) Complete(ctx context.Context, docID id.ID) (*Stocktake, error) {
	req := appctx.GetRequest(ctx)

	return s.mutate(ctx, docID, func(doc *Stocktake) error {
		return doc.Complete(req.Clock())
	})
}

// Cancel abandons an unfinished count.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Stocktake, error) {
	return s.mutate(ctx, docID, func(doc *Stocktake) error {
		return doc.Cancel()
	})
}

// mutate loads the document with its lines under lock, applies op and
// persists document plus lines in one transaction.
func (s *Service) mutate(ctx context.Context, docID id.ID, op func(doc *Stocktake) error) (*Stocktake, error) {
	var doc *Stocktake
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := op(doc); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update stocktake: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Post records the count's adjustment movements at its branch.
func (s *Service) Post(ctx context.Context, docID id.ID) (*Stocktake, error) {
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

	logger.Info(ctx, "stocktake posted",
		"id", doc.ID,
		"number", doc.Number,
		"surplus", doc.TotalSurplus,
		"shortage", doc.TotalShortage)

	return doc, nil
}

// Unpost reverses the count's adjustment movements.
func (s *Service) Unpost(ctx context.Context, docID id.ID) (*Stocktake, error) {
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

	logger.Info(ctx, "stocktake unposted", "id", doc.ID, "number", doc.Number)

	return doc, nil
}

// Delete removes an unposted count.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		if doc.IsPosted() {
			return apperror.NewBusinessRule(
				apperror.CodeAlreadyPosted,
				"Posted count cannot be deleted",
			).WithDetail("number", doc.Number)
		}
		return s.repo.Delete(ctx, docID)
	})
}

// GetByID retrieves a count with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Stocktake, error) {
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

// List retrieves counts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Stocktake], error) {
	return s.repo.List(ctx, filter)
}

// Variance summarizes book-vs-counted deviations for review before
// posting.
type Variance struct {
	StocktakeID     id.ID          `json:"stocktakeId"`
	LocationID      id.ID          `json:"locationId"`
	Status          Status         `json:"status"`
	Items           []VarianceItem `json:"items"`
	TotalBookQty    types.Quantity `json:"totalBookQty"`
	TotalCountedQty types.Quantity `json:"totalCountedQty"`
	TotalSurplus    types.Quantity `json:"totalSurplus"`
	TotalShortage   types.Quantity `json:"totalShortage"`
	TotalValue      types.Money    `json:"totalValue"`
}

// VarianceItem is one line of the variance summary.
type VarianceItem struct {
	LineNo         int            `json:"lineNo"`
	ProductID      id.ID          `json:"productId"`
	BookQty        types.Quantity `json:"bookQty"`
	CountedQty     types.Quantity `json:"countedQty"`
	Deviation      types.Quantity `json:"deviation"`
	DeviationValue types.Money    `json:"deviationValue"`
	Counted        bool           `json:"counted"`
}

// GetVariance returns the deviation summary for a count.
func (s *Service) GetVariance(ctx context.Context, docID id.ID) (*Variance, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	result := &Variance{
		StocktakeID:     docID,
		LocationID:      doc.LocationID,
		Status:          doc.Status,
		Items:           make([]VarianceItem, 0, len(doc.Lines)),
		TotalBookQty:    doc.TotalBookQty,
		TotalCountedQty: doc.TotalCountedQty,
		TotalSurplus:    doc.TotalSurplus,
		TotalShortage:   doc.TotalShortage,
		TotalValue:      types.Zero(),
	}

	for _, l := range doc.Lines {
		item := VarianceItem{
			LineNo:    l.LineNo,
			ProductID: l.ProductID,
			BookQty:   l.BookQty,
			Counted:   l.Counted,
		}
		if l.CountedQty != nil {
			item.CountedQty = *l.CountedQty
			item.Deviation = l.Deviation
			item.DeviationValue = l.DeviationValue
			result.TotalValue = result.TotalValue.Add(l.DeviationValue)
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}
