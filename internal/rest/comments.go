package rest

import (
	"net/http"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (a *Api) PostComment(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	proto := &api.CommentProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := a.content.AddComment(c.Request.Context(), c.Param("slug"), user.ID, proto.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.FromComment(comment))
}

// GetComments returns a post's comments oldest-first, every one carrying a
// resolved author label.
func (a *Api) GetComments(c *gin.Context) {
	comments, err := a.content.GetComments(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := api.CommentList{Comments: make([]api.Comment, 0, len(comments)), Total: len(comments)}
	for _, comment := range comments {
		out.Comments = append(out.Comments, api.FromComment(comment))
	}

	c.JSON(http.StatusOK, out)
}
