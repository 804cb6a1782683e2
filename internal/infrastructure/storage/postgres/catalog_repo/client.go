package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/domain/catalogs/client"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const clientTable = "cat_clients"

// ClientRepo implements client.Repository.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txm *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*client.Client](
			txm,
			clientTable,
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return &client.Client{} },
		),
	}
}

// FindByDocument retrieves a client by identity document number.
func (r *ClientRepo) FindByDocument(ctx context.Context, docNumber string) (*client.Client, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"document_number": docNumber}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", docNumber)
		}
		return nil, err
	}
	return c, nil
}
