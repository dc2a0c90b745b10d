package domain

import (
	"context"
	"io"
	"time"
)

// FileInfo describes a stored attachment. The blob itself lives in the
// bucket; posts reference it by ID only.
type FileInfo struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// Bucket is the attachment store. Upload takes a caller-generated id so the
// id can be recorded on the owning post before the bytes land.
type Bucket interface {
	Upload(ctx context.Context, id, name, contentType string, r io.Reader) (*FileInfo, error)
	Delete(ctx context.Context, id string) error
	Info(ctx context.Context, id string) (*FileInfo, error)

	// Open returns the file's contents for download. The caller closes it.
	Open(ctx context.Context, id string) (io.ReadCloser, *FileInfo, error)
}
