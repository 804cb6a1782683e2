package client

import (
	"context"

	"tallerpro/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByDocument retrieves a client by identity document number (unique).
	FindByDocument(ctx context.Context, docNumber string) (*Client, error)
}
