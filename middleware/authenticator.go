package middleware

import (
	"context"
	"strings"

	"go-admin-panel/common"
	"go-admin-panel/domain"

	"github.com/gin-gonic/gin"
)

type JwtProvider interface {
	Verify(tokenType domain.TokenType, tokenStr string) (*domain.JwtClaims, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
}

type headerData struct {
	AccessToken string
}

func extractHeaderData(c *gin.Context) *headerData {
	hData := &headerData{}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		hData.AccessToken = strings.TrimPrefix(authHeader, "Bearer ")
	}

	return hData
}

// Authenticator resolves the bearer token into the acting staff user. The
// resolved user becomes the causer recorded against every audited mutation
// performed by the request.
func (m *middlewares) Authenticator() gin.HandlerFunc {
	return func(c *gin.Context) {
		headerData := extractHeaderData(c)

		claims, err := m.jwtProvider.Verify(domain.TokenTypeAccess, headerData.AccessToken)
		if err != nil {
			common.ResponseError(c, domain.ErrInvalidToken.WithWrap(err))
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), claims.Sub, nil)
		if err != nil && !common.IsRecordNotFound(err) {
			common.ResponseError(c, err)
			return
		}
		if user == nil || user.IsTrashed() {
			common.ResponseError(c, domain.ErrUserNotFound)
			return
		}

		c.Set(common.UserContextKey, user)
		c.Request = c.Request.WithContext(domain.WithCauser(c.Request.Context(), user))
		c.Next()
	}
}
