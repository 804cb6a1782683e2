package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/domain/catalogs/product"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

type productCatalogHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// ProductHandler serves the product catalog plus barcode lookup.
type ProductHandler struct {
	*productCatalogHandler
	service *product.Service
}

// NewProductHandler wires the generic catalog handler for products.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ProductHandler{
		productCatalogHandler: NewCatalogHandler(base, config),
		service:               service,
	}
}

// GetByBarcode handles GET /products/by-barcode/:barcode.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	ctx := c.Request.Context()

	found, err := h.service.FindByBarcode(ctx, c.Param("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
