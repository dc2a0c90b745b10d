package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/edushare/application"
	"github.com/edushare/edushare/edushare/domain"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (a *Api) Signup(c *gin.Context) {
	proto := &api.SignupProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.auth.CreateAccount(c.Request.Context(), proto.Email, proto.Password, proto.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(result))
}

func (a *Api) Login(c *gin.Context) {
	proto := &api.LoginProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.auth.Login(c.Request.Context(), proto.Email, proto.Password)
	if err != nil {
		// Bad credentials come back as a validation error; present them as
		// unauthorized rather than a malformed request.
		if domain.IsValidation(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(result))
}

func (a *Api) Logout(c *gin.Context) {
	ok := a.auth.Logout(c.Request.Context(), bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// Me reports the active session's user, or 401 when there is none. Absence
// is not an error, just a signed-out client.
func (a *Api) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}

	c.JSON(http.StatusOK, api.FromUser(user))
}

func sessionResponse(result *application.LoginResult) api.SessionResponse {
	return api.SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt.Format(time.RFC3339),
		User:      api.FromUser(result.User),
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("bearer "):])
}
