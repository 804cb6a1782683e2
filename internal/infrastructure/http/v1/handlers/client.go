package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/domain/catalogs/client"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

// Type alias keeps the generic signatures readable.
type clientCatalogHandler = CatalogHandler[
	*client.Client,
	dto.CreateClientRequest,
	dto.UpdateClientRequest,
]

// ClientHandler serves the client catalog plus document-number lookup.
type ClientHandler struct {
	*clientCatalogHandler
	service *client.Service
}

// NewClientHandler wires the generic catalog handler for clients.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	config := CatalogHandlerConfig[
		*client.Client,
		dto.CreateClientRequest,
		dto.UpdateClientRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "client",

		MapCreateDTO: func(req dto.CreateClientRequest) *client.Client {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) *client.Client {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &ClientHandler{
		clientCatalogHandler: NewCatalogHandler(base, config),
		service:              service,
	}
}

// GetByDocument handles GET /clients/by-document/:number.
func (h *ClientHandler) GetByDocument(c *gin.Context) {
	ctx := c.Request.Context()

	found, err := h.service.FindByDocument(ctx, c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
