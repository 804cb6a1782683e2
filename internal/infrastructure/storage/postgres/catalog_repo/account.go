package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/account"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const accountTable = "cat_accounts"

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.FinancialAccount]
}

// NewAccountRepo creates a new financial account repository.
func NewAccountRepo(txm *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*account.FinancialAccount](
			txm,
			accountTable,
			postgres.ExtractDBColumns[account.FinancialAccount](),
			func() *account.FinancialAccount { return &account.FinancialAccount{} },
		),
	}
}

// ListByLocation retrieves accounts of one branch.
func (r *AccountRepo) ListByLocation(ctx context.Context, locationID id.ID) ([]*account.FinancialAccount, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}
