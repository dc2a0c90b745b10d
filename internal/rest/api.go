// Package rest exposes the EduShare services over HTTP.
package rest

import (
	"github.com/edushare/edushare/edushare/application"
	"github.com/gin-gonic/gin"
)

// Api binds the HTTP surface to the two services behind it.
type Api struct {
	auth    *application.AuthService
	content *application.ContentService
}

// NewApi registers every route on the router and returns the bound Api.
func NewApi(router *gin.Engine, auth *application.AuthService, content *application.ContentService) *Api {
	a := &Api{
		auth:    auth,
		content: content,
	}

	authV1 := router.Group("auth/v1")
	{
		authV1.POST("/signup", a.Signup)
		authV1.POST("/login", a.Login)
		authV1.POST("/logout", a.Logout)
		authV1.GET("/me", a.Me)
	}

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", a.GetPosts)
		postsV1.POST("/", a.CreatePost)
		postsV1.GET("/:slug", a.GetPost)
		postsV1.PUT("/:slug", a.UpdatePost)
		postsV1.DELETE("/:slug", a.DeletePost)

		postsV1.PUT("/:slug/like", a.LikePost)
		postsV1.DELETE("/:slug/like", a.UnlikePost)
		postsV1.GET("/:slug/likes", a.GetLikes)

		postsV1.GET("/:slug/comments", a.GetComments)
		postsV1.POST("/:slug/comments", a.PostComment)
	}

	filesV1 := router.Group("files/v1")
	{
		filesV1.POST("/", a.UploadFile)
		filesV1.GET("/:fileId", a.DownloadFile)
		filesV1.GET("/:fileId/info", a.GetFileInfo)
		filesV1.DELETE("/:fileId", a.DeleteFile)
	}

	return a
}
