package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/infrastructure/http/v1/dto"
)

type staffCatalogHandler = CatalogHandler[
	*staff.StaffMember,
	dto.CreateStaffRequest,
	dto.UpdateStaffRequest,
]

// StaffHandler serves the staff catalog plus per-branch rosters.
type StaffHandler struct {
	*staffCatalogHandler
	service *staff.Service
}

// NewStaffHandler wires the generic catalog handler for staff members.
func NewStaffHandler(base *BaseHandler, service *staff.Service) *StaffHandler {
	config := CatalogHandlerConfig[
		*staff.StaffMember,
		dto.CreateStaffRequest,
		dto.UpdateStaffRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "staff",

		MapCreateDTO: func(req dto.CreateStaffRequest) *staff.StaffMember {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateStaffRequest, existing *staff.StaffMember) *staff.StaffMember {
			req.ApplyTo(existing)
			return existing
		},
	}

	return &StaffHandler{
		staffCatalogHandler: NewCatalogHandler(base, config),
		service:             service,
	}
}

// ListByLocation handles GET /locations/:id/staff with an optional
// role query param.
func (h *StaffHandler) ListByLocation(c *gin.Context) {
	ctx := c.Request.Context()

	locationID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var role *staff.Role
	if raw := c.Query("role"); raw != "" {
		r := staff.Role(raw)
		role = &r
	}

	items, err := h.service.ListByLocation(ctx, locationID, role)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
