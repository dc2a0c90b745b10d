package api

import "github.com/edushare/edushare/edushare/domain"

// Like is the wire shape of a like document.
type Like struct {
	PostSlug  string `json:"post_slug"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// LikeList wraps a post's likes with the total count.
type LikeList struct {
	Likes []Like `json:"likes"`
	Total int64  `json:"total"`
}

func FromLike(l *domain.Like) Like {
	return Like{
		PostSlug:  l.PostID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt.Format(timeFormat),
	}
}
