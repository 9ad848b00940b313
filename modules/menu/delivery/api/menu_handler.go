package api

import (
	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/middleware"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	usecase     domain.MenuUsecase
	middlewares middleware.Middlewares
}

func NewMenuHandler(usecase domain.MenuUsecase, middlewares middleware.Middlewares) *MenuHandler {
	return &MenuHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	menus := rg.Group("/menus")

	menus.Use(h.middlewares.Authenticator())
	menus.Use(h.middlewares.APIRateLimits())

	menus.GET("", h.List)
	menus.GET("/trashed", h.ListTrashed)
	menus.POST("", h.Create)
	menus.PUT("/:id", h.Update)
	menus.PATCH("/:id/toggle-status", h.ToggleStatus)
	menus.DELETE("/:id", h.Delete)
	menus.POST("/:id/restore", h.Restore)
	menus.DELETE("/:id/force", h.ForceDelete)
}

type menuPage struct {
	Menus      []*domain.Menu     `json:"menus"`
	Trashed    []*domain.Menu     `json:"trashed"`
	Pagination *domain.Pagination `json:"pagination"`
	Filters    *domain.ListQuery  `json:"filters"`
}

func (h *MenuHandler) List(c *gin.Context) {
	var query domain.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	menus, pagination, err := h.usecase.List(c.Request.Context(), &query)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	trashed, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	common.ResponseOK(c, menuPage{
		Menus:      menus,
		Trashed:    trashed,
		Pagination: pagination,
		Filters:    &query,
	}, "Menus listed successfully")
}

func (h *MenuHandler) ListTrashed(c *gin.Context) {
	menus, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, menus, "Trashed menus listed successfully")
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req domain.MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	menu, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, menu, "Menu created successfully")
}

func (h *MenuHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req domain.MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	menu, err := h.usecase.Update(c.Request.Context(), id, &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, menu, "Menu updated successfully")
}

func (h *MenuHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	menu, err := h.usecase.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, menu, "Menu status toggled successfully")
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu deleted successfully")
}

func (h *MenuHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	menu, err := h.usecase.Restore(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, menu, "Menu restored successfully")
}

func (h *MenuHandler) ForceDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.ForceDelete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "Menu permanently deleted")
}
