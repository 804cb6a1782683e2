package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/stocktake"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	stocktakesTable     = "doc_stocktakes"
	stocktakeLinesTable = "doc_stocktake_lines"
)

// StocktakeRepo implements stocktake.Repository.
type StocktakeRepo struct {
	*BaseDocumentRepo[*stocktake.Stocktake]
}

// NewStocktakeRepo creates a new stocktake repository.
func NewStocktakeRepo(txm *postgres.TxManager) *StocktakeRepo {
	return &StocktakeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*stocktake.Stocktake](
			txm,
			stocktakesTable,
			postgres.ExtractDBColumns[stocktake.Stocktake](),
			func() *stocktake.Stocktake { return &stocktake.Stocktake{} },
		),
	}
}

// GetLines retrieves the lines of a stocktake.
func (r *StocktakeRepo) GetLines(ctx context.Context, docID id.ID) ([]stocktake.Line, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "book_qty", "counted_qty",
			"deviation", "unit_cost", "deviation_value", "counted", "counted_at", "counted_by").
		From(stocktakeLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []stocktake.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the lines of a stocktake.
func (r *StocktakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []stocktake.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + stocktakeLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(stocktakeLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "book_qty", "counted_qty",
			"deviation", "unit_cost", "deviation_value", "counted", "counted_at", "counted_by")

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.ProductID, line.BookQty, line.CountedQty,
			line.Deviation, line.UnitCost, line.DeviationValue, line.Counted, line.CountedAt, line.CountedBy)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves stocktakes with filtering.
func (r *StocktakeRepo) List(ctx context.Context, f stocktake.ListFilter) (domain.ListResult[*stocktake.Stocktake], error) {
	q := r.commonWhere(r.baseSelect(), f.ListFilter)

	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *f.Posted})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
