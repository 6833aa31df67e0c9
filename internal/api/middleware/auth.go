// Package middleware provides HTTP middleware for the zoneinv REST API,
// including bearer token authentication and request logging.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/auth"
)

// userKey is the gin context key holding the resolved *auth.User.
const userKey = "zoneinv.user"

// TokenResolver turns a bearer token into a user. *auth.Service satisfies it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*auth.User, error)
}

// RequireBearer enforces `Authorization: Bearer <token>`. The token must
// resolve to an existing, enabled user.
func RequireBearer(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Unauthorized(c, "not authenticated")
			return
		}
		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err == nil {
			user, err = auth.RequireActiveUser(user)
		}
		switch {
		case err == nil:
			c.Set(userKey, user)
			c.Next()
		case errors.Is(err, auth.ErrUserDisabled):
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrInvalidToken):
			Unauthorized(c, auth.ErrInvalidToken.Error())
		default:
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadGateway, models.ErrorResponse{Error: "user lookup failed"})
		}
	}
}

// WithUser adapts a handler that takes the authenticated user as an
// explicit argument. It must run behind RequireBearer.
func WithUser(fn func(c *gin.Context, user *auth.User)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(userKey)
		user, _ := v.(*auth.User)
		if !ok || user == nil {
			Unauthorized(c, "not authenticated")
			return
		}
		fn(c, user)
	}
}

// Unauthorized aborts with 401 and a bearer challenge.
func Unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
