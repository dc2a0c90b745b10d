package domain

import (
	"context"
	"time"
)

// Like marks that a user liked a post. Its id is the deterministic composite
// of the two foreign keys, which makes the (user, post) uniqueness a property
// of the storage layer rather than of a read-then-write check.
type Like struct {
	ID        string
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// LikeID derives the composite document id for a (user, post) pair.
func LikeID(userID, postID string) string {
	return userID + "_" + postID
}

type LikeRepository interface {
	// PutLike inserts the like if it does not exist yet. It returns the stored
	// like and whether it already existed; racing calls for the same pair must
	// converge on a single document.
	PutLike(ctx context.Context, l *Like) (*Like, bool, error)

	// DeleteLike removes the like for the pair, reporting whether one existed.
	DeleteLike(ctx context.Context, userID, postID string) (bool, error)

	// ListLikesByPost returns all likes for a post and the total count.
	ListLikesByPost(ctx context.Context, postID string) ([]*Like, int64, error)

	// DeleteLikesForPost removes every like on a post, for post deletion.
	DeleteLikesForPost(ctx context.Context, postID string) (int64, error)
}
