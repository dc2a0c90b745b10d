package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ domain.PostRepository = (*Store)(nil)

// postDoc is the persisted shape of a domain.Post. The author's display
// name is deliberately absent: it is enriched from profiles on every read.
type postDoc struct {
	Slug           string    `bson:"_id"`
	Title          string    `bson:"title"`
	Content        string    `bson:"content"`
	ContentHTML    string    `bson:"contentHtml"`
	Snippet        string    `bson:"snippet"`
	FeaturedFileID string    `bson:"featuredFileId,omitempty"`
	Status         string    `bson:"status"`
	AuthorID       string    `bson:"authorId"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func newPostDoc(p *domain.Post) postDoc {
	return postDoc{
		Slug:           p.Slug,
		Title:          p.Title,
		Content:        p.Content,
		ContentHTML:    p.ContentHTML,
		Snippet:        p.Snippet,
		FeaturedFileID: p.FeaturedFileID,
		Status:         p.Status,
		AuthorID:       p.AuthorID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d *postDoc) toDomain() *domain.Post {
	return &domain.Post{
		Slug:           d.Slug,
		Title:          d.Title,
		Content:        d.Content,
		ContentHTML:    d.ContentHTML,
		Snippet:        d.Snippet,
		FeaturedFileID: d.FeaturedFileID,
		Status:         d.Status,
		AuthorID:       d.AuthorID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// CreatePost inserts the post keyed on its slug; a taken slug surfaces as a
// conflict via the _id uniqueness.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) error {
	if _, err := s.posts.InsertOne(ctx, newPostDoc(p)); err != nil {
		return translate(err, "post slug %s is already taken", p.Slug)
	}
	return nil
}

func (s *Store) UpdatePost(ctx context.Context, p *domain.Post) error {
	res, err := s.posts.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.Slug}}, newPostDoc(p))
	if err != nil {
		return translate(err, "failed to update post %s", p.Slug)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("post %s not found", p.Slug)
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, slug string) error {
	res, err := s.posts.DeleteOne(ctx, bson.D{{Key: "_id", Value: slug}})
	if err != nil {
		return translate(err, "failed to delete post %s", slug)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("post %s not found", slug)
	}
	return nil
}

func (s *Store) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	var doc postDoc
	err := s.posts.FindOne(ctx, bson.D{{Key: "_id", Value: slug}}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "post %s not found", slug)
	}
	return doc.toDomain(), nil
}

// ListPosts returns matching posts newest-first.
func (s *Store) ListPosts(ctx context.Context, filter domain.PostFilter) ([]*domain.Post, error) {
	query := bson.D{}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: filter.Status})
	}
	if filter.AuthorID != "" {
		query = append(query, bson.E{Key: "authorId", Value: filter.AuthorID})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts = opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := s.posts.Find(ctx, query, opts)
	if err != nil {
		return nil, translate(err, "failed to list posts")
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0)
	for cursor.Next(ctx) {
		var doc postDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, translate(err, "failed to decode post")
		}
		posts = append(posts, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, translate(err, "error iterating posts")
	}

	return posts, nil
}
