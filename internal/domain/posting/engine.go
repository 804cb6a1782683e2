package posting

import (
	"context"
	"fmt"

	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/tx"
	"tallerpro/pkg/logger"
)

// StockRecorder records and reverses stock register movements.
// Implemented by the stock register service.
type StockRecorder interface {
	RecordMovements(ctx context.Context, movements []entity.StockMovement) error
	ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error
}

// UpdateFunc persists the document after its posted flag changes.
type UpdateFunc func(ctx context.Context) error

// Engine posts and unposts documents atomically: movements and the
// document's posted state are written in one transaction.
type Engine struct {
	stock     StockRecorder
	txManager tx.Manager
}

// NewEngine creates a posting engine.
func NewEngine(stock StockRecorder, txManager tx.Manager) *Engine {
	return &Engine{stock: stock, txManager: txManager}
}

// Post validates the document, generates its movements, replaces any stale
// movements from earlier posting iterations and persists the document.
// Re-posting an already posted document is allowed and idempotent.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc UpdateFunc) error {
	if err := doc.CanPost(ctx); err != nil {
		return err
	}

	// Movements are stamped with the next posting version; MarkPosted below
	// brings the document up to the same version.
	set, err := doc.GenerateMovements(ctx)
	if err != nil {
		return fmt.Errorf("generate movements for %s: %w", doc.GetDocumentType(), err)
	}

	newVersion := doc.GetPostedVersion() + 1

	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Remove movements of all previous iterations.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), newVersion); err != nil {
			return fmt.Errorf("reverse stale movements: %w", err)
		}

		if len(set.Stock) > 0 {
			if err := e.stock.RecordMovements(ctx, set.Stock); err != nil {
				return fmt.Errorf("record stock movements: %w", err)
			}
		}

		doc.MarkPosted()
		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("save document: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
		"stock_movements", len(set.Stock),
	)

	return nil
}

// Unpost removes all register movements produced by the document and clears
// its posted flag.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc UpdateFunc) error {
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// beforeVersion+1 removes every movement up to and including the
		// current posting iteration.
		if err := e.stock.ReverseMovements(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
			return fmt.Errorf("reverse movements: %w", err)
		}

		doc.MarkUnposted()
		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("save document: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"document_type", doc.GetDocumentType(),
		"document_id", doc.GetID(),
	)

	return nil
}
