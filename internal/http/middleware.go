// Package http wires the gin router, authentication middleware and route
// groups for the directory API.
package http

import (
	"net/http"
	"strings"

	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/security"
	"github.com/agencydesk/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// userContextKey is the gin context key holding the resolved user.
const userContextKey = "user"

// UserAuthMiddleware validates bearer tokens and resolves the caller to a
// local user row, provisioning it on first sight.
//
// The admin flag always comes from the freshly loaded row, not from token
// claims, so revoking admin takes effect on the next request.
func UserAuthMiddleware(users *store.UserStore, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, errResolve := users.GetOrCreate(c.Request.Context(), claims.Subject, claims.Email)
		if errResolve != nil {
			log.WithError(errResolve).Error("resolve user failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "resolve user failed"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminRequired rejects callers whose resolved user is not an admin. Must
// run after UserAuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the resolved user from the gin context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
