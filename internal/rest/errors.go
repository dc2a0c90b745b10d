package rest

import (
	"net/http"

	"github.com/edushare/edushare/edushare/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusForError is the single place the error taxonomy meets HTTP.
func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.AbortWithStatusJSON(status, gin.H{"error": "backend unavailable"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
