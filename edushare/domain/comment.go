package domain

import (
	"context"
	"time"
)

// Comment is an append-only remark on a post. AuthorName is denormalized at
// write time; documents written before that existed carry an empty name and
// get one resolved lazily on read.
type Comment struct {
	ID         string
	PostID     string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

type CommentRepository interface {
	CreateComment(ctx context.Context, c *Comment) error

	// ListCommentsByPost returns a post's comments ordered by CreatedAt
	// ascending, oldest first.
	ListCommentsByPost(ctx context.Context, postID string) ([]*Comment, error)

	// DeleteCommentsForPost removes every comment on a post, for post deletion.
	DeleteCommentsForPost(ctx context.Context, postID string) (int64, error)
}
