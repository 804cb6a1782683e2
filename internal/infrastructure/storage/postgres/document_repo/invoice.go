package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable         = "doc_invoices"
	invoiceItemsTable     = "doc_invoice_items"
	invoiceQuoteLinkTable = "doc_invoice_quotes"
)

// Factoring lives in nullable header columns, written and read apart
// from the struct-mapped ones.
var invoiceFactoringCols = []string{
	"factoring_company", "factoring_commission", "factoring_retention",
	"factoring_date", "factoring_account_id",
	"retention_released", "retention_released_at",
}

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*BaseDocumentRepo[*invoice.Invoice]
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*invoice.Invoice](
			txm,
			invoicesTable,
			postgres.ExtractDBColumns[invoice.Invoice](),
			func() *invoice.Invoice { return &invoice.Invoice{} },
		),
	}
}

// Create inserts the invoice header and its factoring columns.
func (r *InvoiceRepo) Create(ctx context.Context, doc *invoice.Invoice) error {
	if err := r.BaseDocumentRepo.Create(ctx, doc); err != nil {
		return err
	}
	return r.saveFactoring(ctx, doc)
}

// Update updates the invoice header and its factoring columns.
func (r *InvoiceRepo) Update(ctx context.Context, doc *invoice.Invoice) error {
	if err := r.BaseDocumentRepo.Update(ctx, doc); err != nil {
		return err
	}
	return r.saveFactoring(ctx, doc)
}

func (r *InvoiceRepo) saveFactoring(ctx context.Context, doc *invoice.Invoice) error {
	q := r.Builder().Update(invoicesTable).Where(squirrel.Eq{"id": doc.ID})

	if doc.Factoring == nil {
		for _, col := range invoiceFactoringCols {
			q = q.Set(col, nil)
		}
	} else {
		fi := doc.Factoring
		q = q.
			Set("factoring_company", fi.Company).
			Set("factoring_commission", fi.Commission).
			Set("factoring_retention", fi.RetentionAmount).
			Set("factoring_date", fi.Date).
			Set("factoring_account_id", fi.AccountID).
			Set("retention_released", fi.RetentionReleased).
			Set("retention_released_at", fi.RetentionReleasedAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build factoring update: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save factoring: %w", err)
	}

	return nil
}

func (r *InvoiceRepo) loadFactoring(ctx context.Context, doc *invoice.Invoice) error {
	q := r.Builder().
		Select(invoiceFactoringCols...).
		From(invoicesTable).
		Where(squirrel.Eq{"id": doc.ID}).
		Where(squirrel.NotEq{"factoring_company": nil})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build factoring query: %w", err)
	}

	var fi invoice.FactoringInfo
	if err := pgxscan.Get(ctx, r.querier(ctx), &fi, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			doc.Factoring = nil
			return nil
		}
		return fmt.Errorf("load factoring: %w", err)
	}

	doc.Factoring = &fi
	return nil
}

// GetByID retrieves an invoice with its factoring block.
func (r *InvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	doc, err := r.BaseDocumentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := r.loadFactoring(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber retrieves an invoice by number with its factoring block.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	doc, err := r.BaseDocumentRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := r.loadFactoring(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetForUpdate retrieves an invoice with a row lock and its factoring block.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, docID id.ID) (*invoice.Invoice, error) {
	doc, err := r.BaseDocumentRepo.GetForUpdate(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := r.loadFactoring(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFull populates the items, quote links and factoring block of an
// already loaded invoice header.
func (r *InvoiceRepo) LoadFull(ctx context.Context, doc *invoice.Invoice) error {
	items, err := r.GetItems(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.Items = items

	quoteIDs, err := r.GetQuoteIDs(ctx, doc.ID)
	if err != nil {
		return err
	}
	doc.QuoteIDs = quoteIDs

	return r.loadFactoring(ctx, doc)
}

// GetItems retrieves the line items of an invoice.
func (r *InvoiceRepo) GetItems(ctx context.Context, docID id.ID) ([]invoice.Item, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "quote_id", "item_type", "product_id", "description",
			"quantity", "unit_price", "tax_rate", "discount",
			"commission", "cost_price", "supplied_by_client",
		).
		From(invoiceItemsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []invoice.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	return items, nil
}

// SaveItems writes the line items of an invoice. Items are written once
// at creation, so this replaces whatever is present.
func (r *InvoiceRepo) SaveItems(ctx context.Context, docID id.ID, items []invoice.Item) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + invoiceItemsTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceItemsTable).
		Columns(
			"line_id", "document_id", "line_no", "quote_id", "item_type", "product_id", "description",
			"quantity", "unit_price", "tax_rate", "discount",
			"commission", "cost_price", "supplied_by_client",
		)

	for _, item := range items {
		q = q.Values(
			item.LineID, docID, item.LineNo, item.QuoteID, item.Type, item.ProductID, item.Description,
			item.Quantity, item.UnitPrice, item.TaxRate, item.Discount,
			item.Commission, item.CostPrice, item.SuppliedByClient,
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

// GetQuoteIDs retrieves IDs of quotes the invoice was built from.
func (r *InvoiceRepo) GetQuoteIDs(ctx context.Context, docID id.ID) ([]id.ID, error) {
	q := r.Builder().
		Select("quote_id").
		From(invoiceQuoteLinkTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("quote_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, r.querier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("get quote ids: %w", err)
	}

	return ids, nil
}

// SaveQuoteIDs writes the quote links of an invoice.
func (r *InvoiceRepo) SaveQuoteIDs(ctx context.Context, docID id.ID, quoteIDs []id.ID) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + invoiceQuoteLinkTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete quote links: %w", err)
	}

	if len(quoteIDs) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(invoiceQuoteLinkTable).
		Columns("document_id", "quote_id")

	for _, quoteID := range quoteIDs {
		q = q.Values(docID, quoteID)
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

// ListByWorkOrder retrieves all invoices of one work order, oldest first.
func (r *InvoiceRepo) ListByWorkOrder(ctx context.Context, workOrderID id.ID) ([]*invoice.Invoice, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"work_order_id": workOrderID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("date ASC")

	docs, err := r.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := r.loadFactoring(ctx, doc); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// ListOverdueCandidates retrieves pending invoices whose due date falls
// before the given day.
func (r *InvoiceRepo) ListOverdueCandidates(ctx context.Context, locationID *id.ID, before time.Time) ([]*invoice.Invoice, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"status": invoice.StatusPendiente}).
		Where(squirrel.Lt{"due_date": before}).
		OrderBy("due_date ASC")

	if locationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *locationID})
	}

	return r.FindMany(ctx, q)
}

// List retrieves invoices with filtering.
func (r *InvoiceRepo) List(ctx context.Context, f invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
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
	if f.DueBefore != nil {
		q = q.Where(squirrel.Lt{"due_date": *f.DueBefore})
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
