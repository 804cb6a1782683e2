package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/loan"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	loansTable        = "doc_loans"
	loanPaymentsTable = "doc_loan_payments"
)

// LoanRepo implements loan.Repository.
type LoanRepo struct {
	*BaseDocumentRepo[*loan.Loan]
}

// NewLoanRepo creates a new loan repository.
func NewLoanRepo(txm *postgres.TxManager) *LoanRepo {
	return &LoanRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*loan.Loan](
			txm,
			loansTable,
			postgres.ExtractDBColumns[loan.Loan](),
			func() *loan.Loan { return &loan.Loan{} },
		),
	}
}

// GetPayments retrieves the payments of a loan, oldest first.
func (r *LoanRepo) GetPayments(ctx context.Context, loanID id.ID) ([]loan.Payment, error) {
	q := r.Builder().
		Select("id", "loan_id", "date", "amount", "account_id", "notes").
		From(loanPaymentsTable).
		Where(squirrel.Eq{"loan_id": loanID}).
		OrderBy("date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []loan.Payment
	if err := pgxscan.Select(ctx, r.querier(ctx), &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("get payments: %w", err)
	}

	return payments, nil
}

// AddPayment appends one payment. Payments are never rewritten.
func (r *LoanRepo) AddPayment(ctx context.Context, p loan.Payment) error {
	q := r.Builder().
		Insert(loanPaymentsTable).
		Columns("id", "loan_id", "date", "amount", "account_id", "notes").
		Values(p.ID, p.LoanID, p.Date, p.Amount, p.AccountID, p.Notes)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert payment: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// List retrieves loans with filtering.
func (r *LoanRepo) List(ctx context.Context, f loan.ListFilter) (domain.ListResult[*loan.Loan], error) {
	common := f.ListFilter
	common.Search = ""
	q := r.commonWhere(r.baseSelect(), common)

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"borrower_name": pattern},
		})
	}

	if f.StaffID != nil {
		q = q.Where(squirrel.Eq{"staff_id": *f.StaffID})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}
	if f.OnlyOutstanding {
		q = q.Where(squirrel.Expr(
			"amount > COALESCE((SELECT SUM(p.amount) FROM "+loanPaymentsTable+" p WHERE p.loan_id = "+loansTable+".id), 0)",
		))
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
