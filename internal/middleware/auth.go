package middleware

import (
	"net/http"
	"strings"

	"github.com/edushare/edushare/edushare/application"
	"github.com/edushare/edushare/edushare/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const userKey = "edushare.user"

// Authenticate resolves the bearer token into a user and stashes it in the
// request context. Anonymous requests pass through; handlers that need a
// user call RequireUser.
func Authenticate(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.Next()
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve current user")
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "authentication backend unavailable"})
			return
		}
		if user != nil {
			c.Set(userKey, user)
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user for the request, if any.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// RequireUser aborts with 401 unless the request carries a valid session.
func RequireUser(c *gin.Context) (*domain.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, false
	}
	return user, true
}
