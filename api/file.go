package api

import "github.com/edushare/edushare/edushare/domain"

// FileInfo is the wire shape of an attachment's metadata.
type FileInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	UploadedAt  string `json:"uploaded_at"`
	PreviewURL  string `json:"preview_url"`
}

func FromFileInfo(f *domain.FileInfo, previewURL func(string) string) FileInfo {
	return FileInfo{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		UploadedAt:  f.UploadedAt.Format(timeFormat),
		PreviewURL:  previewURL(f.ID),
	}
}
