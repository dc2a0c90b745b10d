package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/edushare/edushare/edushare/application"
	"github.com/edushare/edushare/edushare/domain"
	"github.com/edushare/edushare/edushare/persistence/memory"
	mongostore "github.com/edushare/edushare/edushare/persistence/mongo"
	"github.com/edushare/edushare/internal/config"
	"github.com/edushare/edushare/internal/middleware"
	"github.com/edushare/edushare/internal/rest"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// repositories groups everything a storage backend must provide.
type repositories struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	profiles domain.ProfileRepository
	posts    domain.PostRepository
	likes    domain.LikeRepository
	comments domain.CommentRepository
	bucket   domain.Bucket
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	repos, cleanup, err := openBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer cleanup()

	authService := application.NewAuthService(
		repos.accounts,
		repos.sessions,
		repos.profiles,
		[]byte(cfg.JWTSecret),
		cfg.SessionTTL,
	)

	resolver := application.NewDisplayNameResolver(repos.profiles)
	renderer := application.NewContentRenderer(cfg.PreviewURL)

	contentService := application.NewContentService(
		repos.posts,
		repos.likes,
		repos.comments,
		repos.bucket,
		resolver,
		renderer,
		cfg.PreviewURL,
	)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(middleware.Authenticate(authService))

	rest.NewApi(router, authService, contentService)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("backend", cfg.Backend).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

// openBackend wires the configured storage implementation. The cleanup func
// is non-nil even when there is nothing to tear down.
func openBackend(cfg *config.Config) (*repositories, func(), error) {
	switch cfg.Backend {
	case "memory":
		store := memory.New()
		return &repositories{
			accounts: store,
			sessions: store,
			profiles: store,
			posts:    store,
			likes:    store,
			comments: store,
			bucket:   store,
		}, func() {}, nil

	default:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}

		store := mongostore.NewStore(client, cfg.DatabaseName, mongostore.Collections{
			Accounts: cfg.AccountsCollection,
			Sessions: cfg.SessionsCollection,
			Profiles: cfg.ProfilesCollection,
			Posts:    cfg.PostsCollection,
			Likes:    cfg.LikesCollection,
			Comments: cfg.CommentsCollection,
			Bucket:   cfg.BucketName,
		})

		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}

		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from mongodb")
			}
		}
		return &repositories{
			accounts: store,
			sessions: store,
			profiles: store,
			posts:    store,
			likes:    store,
			comments: store,
			bucket:   store,
		}, cleanup, nil
	}
}
