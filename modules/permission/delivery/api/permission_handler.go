package api

import (
	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/middleware"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	usecase     domain.PermissionUsecase
	middlewares middleware.Middlewares
}

func NewPermissionHandler(usecase domain.PermissionUsecase, middlewares middleware.Middlewares) *PermissionHandler {
	return &PermissionHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *PermissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	permissions := rg.Group("/permissions")

	permissions.Use(h.middlewares.Authenticator())
	permissions.Use(h.middlewares.APIRateLimits())

	permissions.GET("", h.List)
	permissions.GET("/trashed", h.ListTrashed)
	permissions.GET("/grouped", h.GroupedByFeature)
	permissions.POST("", h.Create)
	permissions.PUT("/:id", h.Update)
	permissions.PATCH("/:id/toggle-status", h.ToggleStatus)
	permissions.DELETE("/:id", h.Delete)
	permissions.POST("/:id/restore", h.Restore)
	permissions.DELETE("/:id/force", h.ForceDelete)
}

type permissionPage struct {
	Permissions []*domain.Permission `json:"permissions"`
	Trashed     []*domain.Permission `json:"trashed"`
	Pagination  *domain.Pagination   `json:"pagination"`
	Filters     *domain.ListQuery    `json:"filters"`
}

func (h *PermissionHandler) List(c *gin.Context) {
	var query domain.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	permissions, pagination, err := h.usecase.List(c.Request.Context(), &query)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	trashed, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	common.ResponseOK(c, permissionPage{
		Permissions: permissions,
		Trashed:     trashed,
		Pagination:  pagination,
		Filters:     &query,
	}, "Permissions listed successfully")
}

func (h *PermissionHandler) ListTrashed(c *gin.Context) {
	permissions, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, permissions, "Trashed permissions listed successfully")
}

// GroupedByFeature serves the role-assignment page's permission picker.
func (h *PermissionHandler) GroupedByFeature(c *gin.Context) {
	grouped, err := h.usecase.GroupedByFeature(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, grouped, "Permissions grouped successfully")
}

func (h *PermissionHandler) Create(c *gin.Context) {
	var req domain.PermissionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	permission, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, permission, "Permission created successfully")
}

func (h *PermissionHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req domain.PermissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	permission, err := h.usecase.Update(c.Request.Context(), id, &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, permission, "Permission updated successfully")
}

func (h *PermissionHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	permission, err := h.usecase.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, permission, "Permission status toggled successfully")
}

func (h *PermissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Permission deleted successfully")
}

func (h *PermissionHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	permission, err := h.usecase.Restore(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, permission, "Permission restored successfully")
}

func (h *PermissionHandler) ForceDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.ForceDelete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Permission permanently deleted")
}
