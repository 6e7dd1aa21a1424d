package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"recommender/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the state of the store circuit breaker
type BreakerReporter interface {
	State() gobreaker.State
}

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// RouterConfig wires handlers and middleware into a gin engine
type RouterConfig struct {
	Chat           ChatService
	Catalog        CatalogService
	Events         EventService
	Store          Pinger
	Breaker        BreakerReporter
	Build          BuildInfo
	AllowedOrigins string
	Log            logrus.FieldLogger
}

const healthTimeout = 2 * time.Second

// NewRouter builds the HTTP surface of the recommender
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(cfg.Log), Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	chatbot := NewChatbotHandler(cfg.Chat, cfg.Log)
	catalog := NewCatalogHandler(cfg.Catalog, cfg.Log)
	events := NewEventHandler(cfg.Events, cfg.Log)

	router.GET("/health", health(cfg.Store, cfg.Breaker, cfg.Build, cfg.Log))
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    cfg.Build.Version,
			"build_time": cfg.Build.BuildTime,
			"git_commit": cfg.Build.GitCommit,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		chat := api.Group("/chatbot")
		chat.POST("/message", chatbot.Message)
		chat.GET("/suggestions", chatbot.Suggestions)
		chat.GET("/user/products", chatbot.UserProducts)
		chat.GET("/health", chatbot.Health)

		api.GET("/search/categories", catalog.SearchCategories)
		api.GET("/search/products", catalog.SearchProducts)
		api.GET("/user/recommendations", catalog.UserRecommendations)

		ev := api.Group("/events")
		ev.GET("/recommendations", events.Recommendations)
		ev.GET("/popular", events.Popular)
		ev.GET("/search", events.Search)
		ev.GET("/types", events.Types)
		ev.GET("/:id", events.Details)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

func health(store Pinger, breaker BreakerReporter, build BuildInfo, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		database := "up"

		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				logger.FromContext(c.Request.Context(), log).WithError(err).Warn("health check: store unreachable")
				status, code = "degraded", http.StatusServiceUnavailable
				database = "down"
			}
		}

		body := gin.H{
			"status":     status,
			"service":    "recommender",
			"database":   database,
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		}
		if breaker != nil {
			body["breaker"] = breaker.State().String()
		}
		c.JSON(code, body)
	}
}
