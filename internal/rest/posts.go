package rest

import (
	"net/http"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/edushare/application"
	"github.com/edushare/edushare/edushare/domain"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GetPosts lists posts. Without query parameters only active posts are
// returned; ?status= and ?author= narrow or widen the filter.
func (a *Api) GetPosts(c *gin.Context) {
	filter := &domain.PostFilter{Status: domain.StatusActive}
	if status, ok := c.GetQuery("status"); ok {
		filter.Status = status
	}
	if author, ok := c.GetQuery("author"); ok {
		filter.AuthorID = author
	}

	posts, err := a.content.ListPosts(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := api.PostList{Posts: make([]api.Post, 0, len(posts)), Total: len(posts)}
	for _, post := range posts {
		out.Posts = append(out.Posts, api.FromPost(post, a.content.FilePreviewURL, false))
	}

	c.JSON(http.StatusOK, out)
}

func (a *Api) GetPost(c *gin.Context) {
	post, err := a.content.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromPost(post, a.content.FilePreviewURL, true))
}

func (a *Api) CreatePost(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	proto := &api.PostProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.content.CreatePost(c.Request.Context(), user.ID, application.CreatePostInput{
		Slug:           proto.Slug,
		Title:          proto.Title,
		Content:        proto.Content,
		FeaturedFileID: proto.FeaturedFileID,
		Status:         proto.Status,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.FromPost(post, a.content.FilePreviewURL, true))
}

func (a *Api) UpdatePost(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	proto := &api.PostProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.content.UpdatePost(c.Request.Context(), user.ID, c.Param("slug"), application.UpdatePostInput{
		Title:          proto.Title,
		Content:        proto.Content,
		FeaturedFileID: proto.FeaturedFileID,
		Status:         proto.Status,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromPost(post, a.content.FilePreviewURL, true))
}

func (a *Api) DeletePost(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	if err := a.content.DeletePost(c.Request.Context(), user.ID, c.Param("slug")); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
