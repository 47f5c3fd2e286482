package middleware

import (
	"Agora/pkg/context"
	"Agora/pkg/jwt"
	"Agora/pkg/log"
	"Agora/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth requires a valid bearer token. Every rejection is a 401.
func Auth(secret func() []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret())
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "authorization required")
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through. A present but invalid token is still a 401.
func OptionalAuth(secret func() []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := bearerClaims(c, secret())
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "authorization required")
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
	if err != nil {
		log.L.Debug("reject token", zap.Error(err))
		return nil, false
	}
	return claims, true
}
