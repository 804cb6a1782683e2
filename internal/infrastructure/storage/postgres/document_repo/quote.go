package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	quotesTable     = "doc_quotes"
	quoteItemsTable = "doc_quote_items"
)

// QuoteRepo implements quote.Repository.
type QuoteRepo struct {
	*BaseDocumentRepo[*quote.Quote]
}

// NewQuoteRepo creates a new quote repository.
func NewQuoteRepo(txm *postgres.TxManager) *QuoteRepo {
	return &QuoteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quote.Quote](
			txm,
			quotesTable,
			postgres.ExtractDBColumns[quote.Quote](),
			func() *quote.Quote { return &quote.Quote{} },
		),
	}
}

// GetItems retrieves the line items of a quote.
func (r *QuoteRepo) GetItems(ctx context.Context, docID id.ID) ([]quote.Item, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "item_type", "product_id", "description",
			"quantity", "unit_price", "tax_rate", "discount",
			"commission", "cost_price", "supplied_by_client", "approved",
		).
		From(quoteItemsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []quote.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	return items, nil
}

// SaveItems replaces the line items of a quote.
func (r *QuoteRepo) SaveItems(ctx context.Context, docID id.ID, items []quote.Item) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + quoteItemsTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(quoteItemsTable).
		Columns(
			"line_id", "document_id", "line_no", "item_type", "product_id", "description",
			"quantity", "unit_price", "tax_rate", "discount",
			"commission", "cost_price", "supplied_by_client", "approved",
		)

	for _, item := range items {
		q = q.Values(
			item.LineID, docID, item.LineNo, item.Type, item.ProductID, item.Description,
			item.Quantity, item.UnitPrice, item.TaxRate, item.Discount,
			item.Commission, item.CostPrice, item.SuppliedByClient, item.Approved,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	return nil
}

// ListByWorkOrder retrieves all quotes of one work order, oldest first.
func (r *QuoteRepo) ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*quote.Quote, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"work_order_id": workOrderID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date ASC")

	return r.FindMany(ctx, q)
}

// List retrieves quotes with filtering.
func (r *QuoteRepo) List(ctx context.Context, f quote.ListFilter) (domain.ListResult[*quote.Quote], error) {
	q := r.commonWhere(r.baseSelect(), f.ListFilter)

	if f.WorkOrderID != nil {
		q = q.Where(squirrel.Eq{"work_order_id": *f.WorkOrderID})
	}
	if f.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *f.ClientID})
	}
	if f.AdvisorID != nil {
		q = q.Where(squirrel.Eq{"advisor_id": *f.AdvisorID})
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
