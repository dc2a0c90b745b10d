package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var _ domain.SessionRepository = (*Store)(nil)

type sessionDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

func (d *sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:        d.ID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

func (s *Store) CreateSession(ctx context.Context, sess *domain.Session) error {
	doc := sessionDoc{
		ID:        sess.ID,
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}

	if _, err := s.sessions.InsertOne(ctx, doc); err != nil {
		return translate(err, "failed to create session for user %s", sess.UserID)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var doc sessionDoc
	err := s.sessions.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "session %s not found", id)
	}
	return doc.toDomain(), nil
}

// DeleteSessionsForUser signs the user out everywhere.
func (s *Store) DeleteSessionsForUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.sessions.DeleteMany(ctx, bson.D{{Key: "userId", Value: userID}})
	if err != nil {
		return 0, translate(err, "failed to delete sessions for user %s", userID)
	}
	return res.DeletedCount, nil
}
