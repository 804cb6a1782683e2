package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/auth"
	"tallerpro/internal/infrastructure/http/v1/dto"
	"tallerpro/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(ctx, req.ToAuthRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(ctx, req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Tokens: dto.FromTokenPair(tokens),
		User:   dto.FromUser(user),
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTokenPair(tokens))
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.Logout(ctx, userID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// AssignRole handles POST /auth/users/:id/roles
func (h *AuthHandler) AssignRole(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.AssignRole(ctx, userID, req.RoleCode); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "role assigned")
}

// RevokeRole handles DELETE /auth/users/:id/roles/:code
func (h *AuthHandler) RevokeRole(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.RevokeRole(ctx, userID, c.Param("code")); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "role revoked")
}

// GrantLocation handles POST /auth/users/:id/locations
func (h *AuthHandler) GrantLocation(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.GrantLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	locationID, err := id.Parse(req.LocationID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id"))
		return
	}

	if err := h.service.GrantLocation(ctx, userID, locationID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "location access granted")
}

// RevokeLocation handles DELETE /auth/users/:id/locations/:locationId
func (h *AuthHandler) RevokeLocation(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	locationID, err := id.Parse(c.Param("locationId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id"))
		return
	}

	if err := h.service.RevokeLocation(ctx, userID, locationID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "location access revoked")
}

// ListUsers handles GET /auth/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	filter := auth.UserFilter{
		Search:   c.Query("search"),
		RoleCode: c.Query("role"),
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("isActive"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	users, total, err := h.service.ListUsers(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.UserResponse, len(users))
	for i := range users {
		items[i] = dto.FromUser(&users[i])
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// GetUser handles GET /auth/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// ListRoles handles GET /auth/roles
func (h *AuthHandler) ListRoles(c *gin.Context) {
	ctx := c.Request.Context()

	roles, err := h.service.ListRoles(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := make([]*dto.RoleResponse, len(roles))
	for i := range roles {
		response[i] = dto.FromRole(&roles[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": response})
}

// CreateRole handles POST /auth/roles
func (h *AuthHandler) CreateRole(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.service.CreateRole(ctx, req.Code, req.Name, req.Description)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRole(role))
}

// ListPermissions handles GET /auth/permissions
func (h *AuthHandler) ListPermissions(c *gin.Context) {
	ctx := c.Request.Context()

	permissions, err := h.service.ListPermissions(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := make([]*dto.PermissionResponse, len(permissions))
	for i := range permissions {
		response[i] = dto.FromPermission(&permissions[i])
	}

	c.JSON(http.StatusOK, gin.H{"items": response})
}

func (h *AuthHandler) currentUserID(c *gin.Context) (id.ID, bool) {
	userCtx := appctx.GetUser(c.Request.Context())
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return id.Nil(), false
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return id.Nil(), false
	}

	return userID, true
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	// Public routes (no auth required)
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.POST("/refresh", h.Refresh)

	// Protected routes (auth required)
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
	protected.GET("/roles", h.ListRoles)
	protected.GET("/permissions", h.ListPermissions)

	// User administration. Privileged; keep behind manage:users.
	admin := protected.Group("/users", middleware.RequirePermission(auth.PermManageUsers))
	admin.GET("", h.ListUsers)
	admin.GET("/:id", h.GetUser)
	admin.POST("/:id/roles", h.AssignRole)
	admin.DELETE("/:id/roles/:code", h.RevokeRole)
	admin.POST("/:id/locations", h.GrantLocation)
	admin.DELETE("/:id/locations/:locationId", h.RevokeLocation)

	// Role definitions shape the whole grant model; admins only.
	protected.POST("/roles", middleware.RequireRole(auth.RoleAdmin), h.CreateRole)
}
