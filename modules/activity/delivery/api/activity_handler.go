package api

import (
	"go-admin-panel/common"
	"go-admin-panel/domain"
	"go-admin-panel/middleware"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	usecase     domain.ActivityUsecase
	middlewares middleware.Middlewares
}

func NewActivityHandler(usecase domain.ActivityUsecase, middlewares middleware.Middlewares) *ActivityHandler {
	return &ActivityHandler{
		usecase:     usecase,
		middlewares: middlewares,
	}
}

func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	activities := rg.Group("/activities")

	activities.Use(h.middlewares.Authenticator())
	activities.Use(h.middlewares.APIRateLimits())

	activities.GET("", h.List)
}

type activityPage struct {
	Activities []*domain.Activity        `json:"activities"`
	Pagination *domain.Pagination        `json:"pagination"`
	Filters    *domain.ActivityListQuery `json:"filters"`
}

// List returns the audit trail page. The echoed filters carry the normalized
// sort and page window actually applied.
func (h *ActivityHandler) List(c *gin.Context) {
	var query domain.ActivityListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.ResponseBadRequest(c, err.Error())
		return
	}

	activities, pagination, err := h.usecase.List(c.Request.Context(), &query)
	if err != nil {
		common.ResponseError(c, err)
		return
	}

	common.ResponseOK(c, activityPage{
		Activities: activities,
		Pagination: pagination,
		Filters:    &query,
	}, "Activities listed successfully")
}
