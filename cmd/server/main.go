package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recommender/internal/config"
	"recommender/internal/handler"
	"recommender/internal/logger"
	"recommender/internal/repository"
	"recommender/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging)
	log.WithFields(logger.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting recommender")

	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer repo.Close()
	log.Info("connected to PostgreSQL")

	breaker := repository.NewBreakerStore("postgres", repo, cfg.Breaker, log)
	var store repository.Store = breaker

	if cfg.Redis.Address != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := repository.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unavailable, serving without read cache")
		} else {
			defer client.Close()
			cache := repository.NewCachedStore(store, client, cfg.Redis.TTL, log)
			// drop entries left by a previous run
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := cache.Invalidate(flushCtx); err != nil {
				log.WithError(err).Warn("failed to flush read cache")
			}
			flushCancel()
			store = cache
			log.WithField("address", cfg.Redis.Address).Info("read cache enabled")
		}
	}

	// Initialize services
	matcher := service.NewIntentMatcher(nil)
	suggester := service.NewSuggester()
	ranker := service.NewRanker(nil)

	chatService := service.NewChatService(store, matcher, suggester, log)
	catalogService := service.NewCatalogService(store, log)
	eventService := service.NewEventService(store, ranker, log)

	router := handler.NewRouter(handler.RouterConfig{
		Chat:    chatService,
		Catalog: catalogService,
		Events:  eventService,
		Store:   store,
		Breaker: breaker,
		Build: handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
