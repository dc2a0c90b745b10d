package rest

import (
	"net/http"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LikePost is idempotent: liking a post twice leaves exactly one like.
func (a *Api) LikePost(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	like, err := a.content.LikePost(c.Request.Context(), c.Param("slug"), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromLike(like))
}

func (a *Api) UnlikePost(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	removed, err := a.content.UnlikePost(c.Request.Context(), c.Param("slug"), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (a *Api) GetLikes(c *gin.Context) {
	likes, total, err := a.content.GetLikes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := api.LikeList{Likes: make([]api.Like, 0, len(likes)), Total: total}
	for _, like := range likes {
		out.Likes = append(out.Likes, api.FromLike(like))
	}

	c.JSON(http.StatusOK, out)
}
