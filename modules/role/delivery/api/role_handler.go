package api

import (
	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/middleware"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	usecase     domain.RoleUsecase
	middlewares middleware.Middlewares
}

func NewRoleHandler(usecase domain.RoleUsecase, middlewares middleware.Middlewares) *RoleHandler {
	return &RoleHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")

	roles.Use(h.middlewares.Authenticator())
	roles.Use(h.middlewares.APIRateLimits())

	roles.GET("", h.List)
	roles.GET("/trashed", h.ListTrashed)
	roles.POST("", h.Create)
	roles.PUT("/:id", h.Update)
	roles.POST("/:id/permissions", h.AssignPermissions)
	roles.PATCH("/:id/toggle-status", h.ToggleStatus)
	roles.DELETE("/:id", h.Delete)
	roles.POST("/:id/restore", h.Restore)
	roles.DELETE("/:id/force", h.ForceDelete)
}

type rolePage struct {
	Roles      []*domain.Role     `json:"roles"`
	Trashed    []*domain.Role     `json:"trashed"`
	Pagination *domain.Pagination `json:"pagination"`
	Filters    *domain.ListQuery  `json:"filters"`
}

func (h *RoleHandler) List(c *gin.Context) {
	var query domain.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	roles, pagination, err := h.usecase.List(c.Request.Context(), &query)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	trashed, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	common.ResponseOK(c, rolePage{
		Roles:      roles,
		Trashed:    trashed,
		Pagination: pagination,
		Filters:    &query,
	}, "Roles listed successfully")
}

func (h *RoleHandler) ListTrashed(c *gin.Context) {
	roles, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, roles, "Trashed roles listed successfully")
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req domain.RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	role, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, role, "Role created successfully")
}

func (h *RoleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req domain.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	role, err := h.usecase.Update(c.Request.Context(), id, &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "Role updated successfully")
}

func (h *RoleHandler) AssignPermissions(c *gin.Context) {
	id := c.Param("id")
	var req domain.AssignPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	role, err := h.usecase.AssignPermissions(c.Request.Context(), id, &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "Role permissions assigned successfully")
}

func (h *RoleHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	role, err := h.usecase.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "Role status toggled successfully")
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role deleted successfully")
}

func (h *RoleHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	role, err := h.usecase.Restore(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, role, "Role restored successfully")
}

func (h *RoleHandler) ForceDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.ForceDelete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Role permanently deleted")
}
