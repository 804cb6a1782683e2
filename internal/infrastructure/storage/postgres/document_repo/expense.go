package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const operatingExpensesTable = "doc_operating_expenses"

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	*BaseDocumentRepo[*expense.OperatingExpense]
}

// NewExpenseRepo creates a new operating expense repository.
func NewExpenseRepo(txm *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*expense.OperatingExpense](
			txm,
			operatingExpensesTable,
			postgres.ExtractDBColumns[expense.OperatingExpense](),
			func() *expense.OperatingExpense { return &expense.OperatingExpense{} },
		),
	}
}

// List retrieves operating expenses with filtering.
func (r *ExpenseRepo) List(ctx context.Context, f expense.ListFilter) (domain.ListResult[*expense.OperatingExpense], error) {
	q := r.commonWhere(r.baseSelect(), f.ListFilter)

	if f.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *f.AccountID})
	}
	if f.Category != nil {
		q = q.Where(squirrel.Eq{"category": *f.Category})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
