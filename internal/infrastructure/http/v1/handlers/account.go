package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/account"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

type accountCatalogHandler = CatalogHandler[
	*account.FinancialAccount,
	dto.CreateAccountRequest,
	dto.UpdateAccountRequest,
]

// AccountHandler serves the financial account catalog.
type AccountHandler struct {
	*accountCatalogHandler
	service *account.Service
}

// NewAccountHandler wires the generic catalog handler for accounts.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHandler {
	config := CatalogHandlerConfig[
		*account.FinancialAccount,
		dto.CreateAccountRequest,
		dto.UpdateAccountRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "account",

		MapCreateDTO: func(req dto.CreateAccountRequest) *account.FinancialAccount {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAccountRequest, existing *account.FinancialAccount) *account.FinancialAccount {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &AccountHandler{
		accountCatalogHandler: NewCatalogHandler(base, config),
		service:               service,
	}
}

// ListByLocation handles GET /locations/:id/accounts.
func (h *AccountHandler) ListByLocation(c *gin.Context) {
	ctx := c.Request.Context()

	locationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	items, err := h.service.ListByLocation(ctx, locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
