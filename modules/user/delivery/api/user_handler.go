package api

import (
	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	usecase     domain.UserUsecase
	middlewares middleware.Middlewares
}

func NewUserHandler(usecase domain.UserUsecase, middlewares middleware.Middlewares) *UserHandler {
	return &UserHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	users.Use(h.middlewares.Authenticator())
	users.Use(h.middlewares.APIRateLimits())

	users.GET("", h.List)
	users.GET("/trashed", h.ListTrashed)
	users.GET("/:id", h.GetByID)
	users.POST("", h.Create)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)
	users.POST("/:id/restore", h.Restore)
	users.DELETE("/:id/force", h.ForceDelete)
}

type userPage struct {
	Users      []*domain.User     `json:"users"`
	Trashed    []*domain.User     `json:"trashed"`
	Pagination *domain.Pagination `json:"pagination"`
	Filters    *domain.ListQuery  `json:"filters"`
}

func (h *UserHandler) List(c *gin.Context) {
	var query domain.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	users, pagination, err := h.usecase.List(c.Request.Context(), &query)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	trashed, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	common.ResponseOK(c, userPage{
		Users:      users,
		Trashed:    trashed,
		Pagination: pagination,
		Filters:    &query,
	}, "Users listed successfully")
}

func (h *UserHandler) ListTrashed(c *gin.Context) {
	users, err := h.usecase.ListTrashed(c.Request.Context())
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, users, "Trashed users listed successfully")
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	user, err := h.usecase.FindByID(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User found")
}

func (h *UserHandler) Create(c *gin.Context) {
	var req domain.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	user, err := h.usecase.Create(c.Request.Context(), &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseCreated(c, user, "User created successfully")
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req domain.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}
	user, err := h.usecase.Update(c.Request.Context(), id, &req)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User updated successfully")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User deleted successfully")
}

func (h *UserHandler) Restore(c *gin.Context) {
	id := c.Param("id")
	user, err := h.usecase.Restore(c.Request.Context(), id)
	if err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseOK(c, user, "User restored successfully")
}

func (h *UserHandler) ForceDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.ForceDelete(c.Request.Context(), id); err != nil {
		common.ResponseError(c, err)
		return
	}
	common.ResponseNoContent(c, "User permanently deleted")
}
