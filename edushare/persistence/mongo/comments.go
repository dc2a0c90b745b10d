package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ domain.CommentRepository = (*Store)(nil)

// commentDoc stores the author name denormalized at write time. Older
// documents may carry an empty name; the service resolves those lazily.
type commentDoc struct {
	ID         string    `bson:"_id"`
	PostID     string    `bson:"postId"`
	AuthorID   string    `bson:"authorId"`
	AuthorName string    `bson:"authorName,omitempty"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func (d *commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:         d.ID,
		PostID:     d.PostID,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
	}
}

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	doc := commentDoc{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}

	if _, err := s.comments.InsertOne(ctx, doc); err != nil {
		return translate(err, "failed to add comment to post %s", c.PostID)
	}
	return nil
}

// ListCommentsByPost returns comments oldest-first, served by the
// (postId, createdAt) index.
func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.comments.Find(ctx, bson.D{{Key: "postId", Value: postID}}, opts)
	if err != nil {
		return nil, translate(err, "failed to list comments for post %s", postID)
	}
	defer cursor.Close(ctx)

	comments := make([]*domain.Comment, 0)
	for cursor.Next(ctx) {
		var doc commentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "failed to decode comment")
		}
		comments = append(comments, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "error iterating comments")
	}

	return comments, nil
}

func (s *Store) DeleteCommentsForPost(ctx context.Context, postID string) (int64, error) {
	res, err := s.comments.DeleteMany(ctx, bson.D{{Key: "postId", Value: postID}})
	if err != nil {
		return 0, translate(err, "failed to delete comments for post %s", postID)
	}
	return res.DeletedCount, nil
}
