package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/domain/catalogs/vehicle"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

type vehicleCatalogHandler = CatalogHandler[
	*vehicle.Vehicle,
	dto.CreateVehicleRequest,
	dto.UpdateVehicleRequest,
]

// VehicleHandler serves the vehicle catalog plus plate lookup and
// per-client listing.
type VehicleHandler struct {
	*vehicleCatalogHandler
	service *vehicle.Service
}

// NewVehicleHandler wires the generic catalog handler for vehicles.
func NewVehicleHandler(base *BaseHandler, service *vehicle.Service) *VehicleHandler {
	config := CatalogHandlerConfig[
		*vehicle.Vehicle,
		dto.CreateVehicleRequest,
		dto.UpdateVehicleRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "vehicle",

		MapCreateDTO: func(req dto.CreateVehicleRequest) *vehicle.Vehicle {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateVehicleRequest, existing *vehicle.Vehicle) *vehicle.Vehicle {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &VehicleHandler{
		vehicleCatalogHandler: NewCatalogHandler(base, config),
		service:               service,
	}
}

// GetByPlate handles GET /vehicles/by-plate/:plate.
func (h *VehicleHandler) GetByPlate(c *gin.Context) {
	ctx := c.Request.Context()

	found, err := h.service.FindByPlate(ctx, c.Param("plate"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// ListByClient handles GET /clients/:id/vehicles.
func (h *VehicleHandler) ListByClient(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	items, err := h.service.ListByClient(ctx, clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
