// Package config loads every runtime setting from the environment. A .env
// file, if present, seeds the environment first; missing required values
// fail startup with one error naming all of them.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultListenAddr = ":8080"
	defaultSessionTTL = 30 * 24 * time.Hour
)

// Config is the single process-wide settings object every component is
// constructed from.
type Config struct {
	ListenAddr string

	// PlatformEndpoint and ProjectID feed the deterministic attachment
	// preview URLs handed to clients.
	PlatformEndpoint string
	ProjectID        string

	// Backend selects the storage implementation: "mongo" or "memory".
	Backend      string
	MongoURI     string
	DatabaseName string

	AccountsCollection string
	SessionsCollection string
	ProfilesCollection string
	PostsCollection    string
	LikesCollection    string
	CommentsCollection string
	BucketName         string

	JWTSecret  string
	SessionTTL time.Duration
}

// Load reads the configuration from the environment, seeded from .env when
// one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using process environment")
	}

	cfg := &Config{
		ListenAddr:         envOr("EDUSHARE_LISTEN_ADDR", defaultListenAddr),
		PlatformEndpoint:   os.Getenv("EDUSHARE_ENDPOINT"),
		ProjectID:          os.Getenv("EDUSHARE_PROJECT_ID"),
		Backend:            envOr("EDUSHARE_BACKEND", "mongo"),
		MongoURI:           os.Getenv("EDUSHARE_MONGO_URI"),
		DatabaseName:       envOr("EDUSHARE_DATABASE", "edushare"),
		AccountsCollection: envOr("EDUSHARE_ACCOUNTS_COLLECTION", "accounts"),
		SessionsCollection: envOr("EDUSHARE_SESSIONS_COLLECTION", "sessions"),
		ProfilesCollection: envOr("EDUSHARE_PROFILES_COLLECTION", "profiles"),
		PostsCollection:    envOr("EDUSHARE_POSTS_COLLECTION", "posts"),
		LikesCollection:    envOr("EDUSHARE_LIKES_COLLECTION", "likes"),
		CommentsCollection: envOr("EDUSHARE_COMMENTS_COLLECTION", "comments"),
		BucketName:         envOr("EDUSHARE_BUCKET", "attachments"),
		JWTSecret:          os.Getenv("EDUSHARE_JWT_SECRET"),
		SessionTTL:         defaultSessionTTL,
	}

	if ttl := os.Getenv("EDUSHARE_SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid EDUSHARE_SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = parsed
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string

	if c.PlatformEndpoint == "" {
		missing = append(missing, "EDUSHARE_ENDPOINT")
	}
	if c.ProjectID == "" {
		missing = append(missing, "EDUSHARE_PROJECT_ID")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "EDUSHARE_JWT_SECRET")
	}

	switch c.Backend {
	case "mongo":
		if c.MongoURI == "" {
			missing = append(missing, "EDUSHARE_MONGO_URI")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown EDUSHARE_BACKEND %q (want \"mongo\" or \"memory\")", c.Backend)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// PreviewURL builds the deterministic view URL for an attachment, the same
// pattern clients embed directly in image tags and download links.
func (c *Config) PreviewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		strings.TrimSuffix(c.PlatformEndpoint, "/"), c.BucketName, fileID, c.ProjectID)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
