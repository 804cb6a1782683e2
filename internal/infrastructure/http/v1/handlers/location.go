package handlers

import (
	"tallerpro/internal/domain/catalogs/location"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// LocationHTTPHandler serves the branch (sede) catalog.
type LocationHTTPHandler = CatalogHandler[
	*location.Location,
	dto.CreateLocationRequest,
	dto.UpdateLocationRequest,
]

// NewLocationHandler wires the generic catalog handler for branches.
func NewLocationHandler(base *BaseHandler, service *location.Service) *LocationHTTPHandler {
	config := CatalogHandlerConfig[
		*location.Location,
		dto.CreateLocationRequest,
		dto.UpdateLocationRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "location",

		MapCreateDTO: func(req dto.CreateLocationRequest) *location.Location {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateLocationRequest, existing *location.Location) *location.Location {
			req.ApplyTo(existing)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
