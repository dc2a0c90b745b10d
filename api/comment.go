package api

import (
	"time"

	"github.com/edushare/edushare/edushare/domain"
)

const timeFormat = time.RFC3339

// Comment is the wire shape of a comment with its author label resolved.
type Comment struct {
	ID         string `json:"id"`
	PostSlug   string `json:"post_slug"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

// CommentProto is the payload for adding a comment.
type CommentProto struct {
	Content string `json:"content"`
}

// CommentList wraps a post's comments, oldest first.
type CommentList struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

func FromComment(c *domain.Comment) Comment {
	return Comment{
		ID:         c.ID,
		PostSlug:   c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.Format(timeFormat),
	}
}
