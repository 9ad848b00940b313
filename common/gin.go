package common

import (
	"go-admin-panel/domain"

	"github.com/gin-gonic/gin"
)

func GetUserFromCtx(c *gin.Context) *domain.User {
	var userFromCtx *domain.User
	if v, ok := c.Get(UserContextKey); ok {
		if user, ok := v.(*domain.User); ok {
			userFromCtx = user
		}
	}

	return userFromCtx
}

func GetRequestIDFromCtx(c *gin.Context) string {
	var rIDFromCtx string
	if v, ok := c.Get(RequestIDContextKey); ok {
		if rID, ok := v.(string); ok {
			rIDFromCtx = rID
		}
	}
	return rIDFromCtx
}
