package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	purchasesTable     = "doc_purchases"
	purchaseLinesTable = "doc_purchase_lines"
)

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase.Purchase](
			txm,
			purchasesTable,
			postgres.ExtractDBColumns[purchase.Purchase](),
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
	}
}

// GetLines retrieves the lines of a purchase.
func (r *PurchaseRepo) GetLines(ctx context.Context, docID id.ID) ([]purchase.Line, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "unit_cost", "tax_rate").
		From(purchaseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []purchase.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the lines of a purchase.
func (r *PurchaseRepo) SaveLines(ctx context.Context, docID id.ID, lines []purchase.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + purchaseLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(purchaseLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "unit_cost", "tax_rate")

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.ProductID, line.Quantity, line.UnitCost, line.TaxRate)
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

// List retrieves purchases with filtering.
func (r *PurchaseRepo) List(ctx context.Context, f purchase.ListFilter) (domain.ListResult[*purchase.Purchase], error) {
	common := f.ListFilter
	common.Search = ""
	q := r.commonWhere(r.baseSelect(), common)

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"supplier_invoice_number": pattern},
		})
	}

	if f.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *f.SupplierID})
	}
	if f.PaymentMethod != nil {
		q = q.Where(squirrel.Eq{"payment_method": *f.PaymentMethod})
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
