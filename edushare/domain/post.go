package domain

import (
	"context"
	"time"
)

// Post statuses. Inactive posts are drafts, hidden from the default listing.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Post is a published piece of content with one featured attachment.
// Content holds the markdown source; ContentHTML and Snippet are derived at
// write time. AuthorName is never persisted — it is enriched on reads from
// the author's profile.
type Post struct {
	Slug           string
	Title          string
	Content        string
	ContentHTML    string
	Snippet        string
	FeaturedFileID string
	Status         string
	AuthorID       string
	AuthorName     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PostFilter narrows ListPosts. A zero filter matches everything.
type PostFilter struct {
	Status   string
	AuthorID string
	Limit    int
	Offset   int
}

type PostRepository interface {
	// CreatePost persists a new post keyed on its slug. Returns a conflict
	// error when the slug is already taken.
	CreatePost(ctx context.Context, p *Post) error

	// UpdatePost replaces the stored post with the same slug.
	UpdatePost(ctx context.Context, p *Post) error

	DeletePost(ctx context.Context, slug string) error
	GetPost(ctx context.Context, slug string) (*Post, error)

	// ListPosts returns matching posts newest-first.
	ListPosts(ctx context.Context, filter PostFilter) ([]*Post, error)
}
