package mongo

import (
	"context"
	"time"

	"github.com/edushare/edushare/edushare/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var _ domain.ProfileRepository = (*Store)(nil)

// profileDoc keys on the user id, which is what enforces the one-profile-
// per-user invariant.
type profileDoc struct {
	UserID    string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d *profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID:    d.UserID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	doc := profileDoc{
		UserID:    p.UserID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}

	if _, err := s.profiles.InsertOne(ctx, doc); err != nil {
		return translate(err, "failed to create profile for user %s", p.UserID)
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var doc profileDoc
	err := s.profiles.FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "profile for user %s not found", userID)
	}
	return doc.toDomain(), nil
}
