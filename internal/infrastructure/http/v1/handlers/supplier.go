package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/domain/catalogs/supplier"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

type supplierCatalogHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// SupplierHandler serves the supplier catalog plus NIT lookup.
type SupplierHandler struct {
	*supplierCatalogHandler
	service *supplier.Service
}

// NewSupplierHandler wires the generic catalog handler for suppliers.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	config := CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "supplier",

		MapCreateDTO: func(req dto.CreateSupplierRequest) *supplier.Supplier {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &SupplierHandler{
		supplierCatalogHandler: NewCatalogHandler(base, config),
		service:                service,
	}
}

// GetByNIT handles GET /suppliers/by-nit/:nit.
func (h *SupplierHandler) GetByNIT(c *gin.Context) {
	ctx := c.Request.Context()

	found, err := h.service.FindByNIT(ctx, c.Param("nit"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
