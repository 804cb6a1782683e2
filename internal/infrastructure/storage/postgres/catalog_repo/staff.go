package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const staffTable = "cat_staff"

// StaffRepo implements staff.Repository.
type StaffRepo struct {
	*BaseCatalogRepo[*staff.StaffMember]
}

// NewStaffRepo creates a new staff repository.
func NewStaffRepo(txm *postgres.TxManager) *StaffRepo {
	return &StaffRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*staff.StaffMember](
			txm,
			staffTable,
			postgres.ExtractDBColumns[staff.StaffMember](),
			func() *staff.StaffMember { return &staff.StaffMember{} },
		),
	}
}

// ListByLocation retrieves active staff of one branch, optionally filtered
// by role.
func (r *StaffRepo) ListByLocation(ctx context.Context, locationID id.ID, role *staff.Role) ([]*staff.StaffMember, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	if role != nil {
		q = q.Where(squirrel.Eq{"role": *role})
	}

	return r.FindMany(ctx, q)
}
