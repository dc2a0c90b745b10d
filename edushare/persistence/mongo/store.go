// Package mongo implements the EduShare repositories over MongoDB, with
// attachments in a GridFS bucket.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collections groups the collection and bucket names a Store works with, so
// deployments can keep several environments in one database.
type Collections struct {
	Accounts string
	Sessions string
	Profiles string
	Posts    string
	Likes    string
	Comments string
	Bucket   string
}

// Store hangs all repository implementations off one database handle.
type Store struct {
	db *mongo.Database

	accounts *mongo.Collection
	sessions *mongo.Collection
	profiles *mongo.Collection
	posts    *mongo.Collection
	likes    *mongo.Collection
	comments *mongo.Collection
	bucket   *mongo.GridFSBucket
}

// Connect dials the deployment and verifies it is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// NewStore binds a Store to the named database and collections.
func NewStore(client *mongo.Client, database string, cols Collections) *Store {
	db := client.Database(database)

	return &Store{
		db:       db,
		accounts: db.Collection(cols.Accounts),
		sessions: db.Collection(cols.Sessions),
		profiles: db.Collection(cols.Profiles),
		posts:    db.Collection(cols.Posts),
		likes:    db.Collection(cols.Likes),
		comments: db.Collection(cols.Comments),
		bucket:   db.GridFSBucket(options.GridFSBucket().SetName(cols.Bucket)),
	}
}
