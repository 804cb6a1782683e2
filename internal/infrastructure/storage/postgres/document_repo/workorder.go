package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	workOrdersTable          = "doc_work_orders"
	workOrderHistoryTable    = "doc_work_order_history"
	workOrderQuoteLinksTable = "doc_work_order_quotes"
)

// WorkOrderRepo implements workorder.Repository.
type WorkOrderRepo struct {
	*BaseDocumentRepo[*workorder.WorkOrder]
}

// NewWorkOrderRepo creates a new work order repository.
func NewWorkOrderRepo(txm *postgres.TxManager) *WorkOrderRepo {
	return &WorkOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*workorder.WorkOrder](
			txm,
			workOrdersTable,
			postgres.ExtractDBColumns[workorder.WorkOrder](),
			func() *workorder.WorkOrder { return &workorder.WorkOrder{} },
		),
	}
}

// GetHistory retrieves the stage history of a work order, oldest first.
func (r *WorkOrderRepo) GetHistory(ctx context.Context, docID id.ID) ([]workorder.HistoryEntry, error) {
	q := r.Builder().
		Select("stage", "date", "user_id", "notes").
		From(workOrderHistoryTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []workorder.HistoryEntry
	if err := pgxscan.Select(ctx, r.querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return entries, nil
}

// AppendHistory appends stage transitions. Existing entries are never
// rewritten.
func (r *WorkOrderRepo) AppendHistory(ctx context.Context, docID id.ID, entries []workorder.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(workOrderHistoryTable).
		Columns("document_id", "stage", "date", "user_id", "notes")

	for _, e := range entries {
		q = q.Values(docID, e.Stage, e.Date, e.User, e.Notes)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	return nil
}

// GetLinkedQuoteIDs retrieves IDs of quotes linked to the work order.
func (r *WorkOrderRepo) GetLinkedQuoteIDs(ctx context.Context, docID id.ID) ([]id.ID, error) {
	q := r.Builder().
		Select("quote_id").
		From(workOrderQuoteLinksTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("linked_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, r.querier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("get linked quotes: %w", err)
	}

	return ids, nil
}

// SaveLinkedQuoteIDs replaces the quote links of the work order.
func (r *WorkOrderRepo) SaveLinkedQuoteIDs(ctx context.Context, docID id.ID, quoteIDs []id.ID) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + workOrderQuoteLinksTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete quote links: %w", err)
	}

	if len(quoteIDs) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(workOrderQuoteLinksTable).
		Columns("document_id", "quote_id", "linked_at")

	for _, quoteID := range quoteIDs {
		q = q.Values(docID, quoteID, squirrel.Expr("NOW()"))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert quote links: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert quote links: %w", err)
	}

	return nil
}

// List retrieves work orders with filtering.
func (r *WorkOrderRepo) List(ctx context.Context, f workorder.ListFilter) (domain.ListResult[*workorder.WorkOrder], error) {
	// Board search covers client name and plate, not just the number
	common := f.ListFilter
	common.Search = ""
	q := r.commonWhere(r.baseSelect(), common)

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"vehicle_plate": pattern},
		})
	}

	if f.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *f.ClientID})
	}
	if f.VehicleID != nil {
		q = q.Where(squirrel.Eq{"vehicle_id": *f.VehicleID})
	}
	if f.AdvisorID != nil {
		q = q.Where(squirrel.Eq{"advisor_id": *f.AdvisorID})
	}
	if f.TechnicianID != nil {
		q = q.Where(squirrel.Eq{"technician_id": *f.TechnicianID})
	}
	if f.Stage != nil {
		q = q.Where(squirrel.Eq{"stage": *f.Stage})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
