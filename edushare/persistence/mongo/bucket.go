package mongo

import (
	"context"
	"io"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ domain.Bucket = (*Store)(nil)

// fileDoc mirrors the GridFS files collection document for metadata reads.
type fileDoc struct {
	ID         string    `bson:"_id"`
	Length     int64     `bson:"length"`
	UploadDate time.Time `bson:"uploadDate"`
	Filename   string    `bson:"filename"`
	Metadata   struct {
		ContentType string `bson:"contentType"`
	} `bson:"metadata"`
}

func (d *fileDoc) toDomain() *domain.FileInfo {
	return &domain.FileInfo{
		ID:          d.ID,
		Name:        d.Filename,
		ContentType: d.Metadata.ContentType,
		Size:        d.Length,
		UploadedAt:  d.UploadDate,
	}
}

// Upload streams the attachment into GridFS under the caller-supplied id.
func (s *Store) Upload(ctx context.Context, id, name, contentType string, r io.Reader) (*domain.FileInfo, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})

	stream, err := s.bucket.OpenUploadStreamWithID(ctx, id, name, opts)
	if err != nil {
		return nil, translate(err, "failed to open upload stream for %s", name)
	}

	size, err := io.Copy(stream, r)
	if err != nil {
		_ = stream.Abort()
		return nil, domain.Transient(err, "failed to write file %s", name)
	}

	if err := stream.Close(); err != nil {
		return nil, translate(err, "failed to finish upload of %s", name)
	}

	return &domain.FileInfo{
		ID:          id,
		Name:        name,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.bucket.Delete(ctx, id); err != nil {
		return translate(err, "file %s not found", id)
	}
	return nil
}

func (s *Store) Info(ctx context.Context, id string) (*domain.FileInfo, error) {
	var doc fileDoc
	err := s.bucket.GetFilesCollection().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(&doc)
	if err != nil {
		return nil, translate(err, "file %s not found", id)
	}
	return doc.toDomain(), nil
}

// Open returns a download stream for the file together with its metadata.
func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, *domain.FileInfo, error) {
	info, err := s.Info(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.bucket.OpenDownloadStream(ctx, id)
	if err != nil {
		return nil, nil, translate(err, "failed to open file %s", id)
	}

	return stream, info, nil
}
