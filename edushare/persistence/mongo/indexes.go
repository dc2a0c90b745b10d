package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Safe to run on
// every startup; Mongo treats re-creation of an identical index as a no-op.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	// Accounts: an email belongs to exactly one account.
	_, err := s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}

	// Sessions: logout deletes by user; expired sessions age out on their own.
	_, err = s.sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expiry"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	// Posts: the default listing filters on status, newest first.
	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("by_status_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	// Likes: one like per (post, user) pair, enforced by the database so
	// racing requests cannot create duplicates.
	_, err = s.likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_post_user"),
	})
	if err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}

	// Comments: served oldest-first per post.
	_, err = s.comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("by_post_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}

	return nil
}
