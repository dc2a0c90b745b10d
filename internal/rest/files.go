package rest

import (
	"net/http"

	"github.com/edushare/edushare/api"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UploadFile accepts a multipart upload under the "file" field and stores it
// in the bucket under a fresh random id.
func (a *Api) UploadFile(c *gin.Context) {
	if _, ok := middleware.RequireUser(c); !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a multipart \"file\" field is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	info, err := a.content.UploadFile(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), f)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.FromFileInfo(info, a.content.FilePreviewURL))
}

func (a *Api) DownloadFile(c *gin.Context) {
	rc, info, err := a.content.OpenFile(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + info.Name + `"`,
	})
}

func (a *Api) GetFileInfo(c *gin.Context) {
	info, err := a.content.GetFileInfo(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.FromFileInfo(info, a.content.FilePreviewURL))
}

func (a *Api) DeleteFile(c *gin.Context) {
	if _, ok := middleware.RequireUser(c); !ok {
		return
	}

	if err := a.content.DeleteFile(c.Request.Context(), c.Param("fileId")); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
