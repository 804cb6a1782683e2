package staff

import (
	"context"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
)

// Repository defines the interface for StaffMember persistence.
type Repository interface {
	domain.CatalogRepository[*StaffMember]

	// ListByLocation retrieves active staff of one branch, optionally by role.
	ListByLocation(ctx context.Context, locationID id.ID, role *Role) ([]*StaffMember, error)
}
