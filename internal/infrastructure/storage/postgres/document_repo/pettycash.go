package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const pettyCashTable = "doc_petty_cash"

// PettyCashRepo implements pettycash.Repository.
type PettyCashRepo struct {
	*BaseDocumentRepo[*pettycash.Transaction]
}

// NewPettyCashRepo creates a new petty cash repository.
func NewPettyCashRepo(txm *postgres.TxManager) *PettyCashRepo {
	return &PettyCashRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*pettycash.Transaction](
			txm,
			pettyCashTable,
			postgres.ExtractDBColumns[pettycash.Transaction](),
			func() *pettycash.Transaction { return &pettycash.Transaction{} },
		),
	}
}

// List retrieves petty cash transactions with filtering.
func (r *PettyCashRepo) List(ctx context.Context, f pettycash.ListFilter) (domain.ListResult[*pettycash.Transaction], error) {
	common := f.ListFilter
	common.Search = ""
	q := r.commonWhere(r.baseSelect(), common)

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	if f.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *f.AccountID})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	if f.PaymentMethod != nil {
		q = q.Where(squirrel.Eq{"payment_method": *f.PaymentMethod})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
