package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ domain.LikeRepository = (*Store)(nil)

// likeDoc keys on the composite user_post id. Together with the unique
// (postId, userId) index this makes like uniqueness a storage guarantee:
// two racing likes for the same pair cannot both insert.
type likeDoc struct {
	ID        string    `bson:"_id"`
	PostID    string    `bson:"postId"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d *likeDoc) toDomain() *domain.Like {
	return &domain.Like{
		ID:        d.ID,
		PostID:    d.PostID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
}

// PutLike inserts the like, treating a duplicate key as "already liked" and
// returning the stored document either way.
func (s *Store) PutLike(ctx context.Context, l *domain.Like) (*domain.Like, bool, error) {
	doc := likeDoc{
		ID:        l.ID,
		PostID:    l.PostID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}

	_, err := s.likes.InsertOne(ctx, doc)
	if err == nil {
		return doc.toDomain(), false, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, translate(err, "failed to like post %s", l.PostID)
	}

	var existing likeDoc
	findErr := s.likes.FindOne(ctx, bson.D{{Key: "_id", Value: l.ID}}).Decode(&existing)
	if findErr != nil {
		return nil, false, translate(findErr, "failed to load existing like for post %s", l.PostID)
	}
	return existing.toDomain(), true, nil
}

func (s *Store) DeleteLike(ctx context.Context, userID, postID string) (bool, error) {
	res, err := s.likes.DeleteOne(ctx, bson.D{{Key: "_id", Value: domain.LikeID(userID, postID)}})
	if err != nil {
		return false, translate(err, "failed to unlike post %s", postID)
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) ListLikesByPost(ctx context.Context, postID string) ([]*domain.Like, int64, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.likes.Find(ctx, bson.D{{Key: "postId", Value: postID}}, opts)
	if err != nil {
		return nil, 0, translate(err, "failed to list likes for post %s", postID)
	}
	defer cursor.Close(ctx)

	likes := make([]*domain.Like, 0)
	for cursor.Next(ctx) {
		var doc likeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, translate(err, "failed to decode like")
		}
		likes = append(likes, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, translate(err, "error iterating likes")
	}

	return likes, int64(len(likes)), nil
}

func (s *Store) DeleteLikesForPost(ctx context.Context, postID string) (int64, error) {
	res, err := s.likes.DeleteMany(ctx, bson.D{{Key: "postId", Value: postID}})
	if err != nil {
		return 0, translate(err, "failed to delete likes for post %s", postID)
	}
	return res.DeletedCount, nil
}
