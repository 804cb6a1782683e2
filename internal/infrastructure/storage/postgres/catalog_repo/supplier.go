package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/domain/catalogs/supplier"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*supplier.Supplier](
			txm,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// FindByNIT retrieves a supplier by tax ID.
func (r *SupplierRepo) FindByNIT(ctx context.Context, nit string) (*supplier.Supplier, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"nit": nit}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	s, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", nit)
		}
		return nil, err
	}
	return s, nil
}
