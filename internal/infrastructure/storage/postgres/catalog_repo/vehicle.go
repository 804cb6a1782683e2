package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/vehicle"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const vehicleTable = "cat_vehicles"

// VehicleRepo implements vehicle.Repository.
type VehicleRepo struct {
	*BaseCatalogRepo[*vehicle.Vehicle]
}

// NewVehicleRepo creates a new vehicle repository.
func NewVehicleRepo(txm *postgres.TxManager) *VehicleRepo {
	return &VehicleRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*vehicle.Vehicle](
			txm,
			vehicleTable,
			postgres.ExtractDBColumns[vehicle.Vehicle](),
			func() *vehicle.Vehicle { return &vehicle.Vehicle{} },
		),
	}
}

// FindByPlate retrieves a vehicle by normalized plate.
func (r *VehicleRepo) FindByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"plate": vehicle.NormalizePlate(plate)}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	v, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("vehicle", plate)
		}
		return nil, err
	}
	return v, nil
}

// ListByClient retrieves all vehicles of one client.
func (r *VehicleRepo) ListByClient(ctx context.Context, clientID id.ID) ([]*vehicle.Vehicle, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("plate ASC")

	return r.FindMany(ctx, q)
}
