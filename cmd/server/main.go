package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/api"
	"github.com/openfpl/scout-api/internal/api/middleware"
	"github.com/openfpl/scout-api/internal/fixtures"
	"github.com/openfpl/scout-api/internal/ml"
	"github.com/openfpl/scout-api/internal/scout"
	"github.com/openfpl/scout-api/internal/services"
	"github.com/openfpl/scout-api/internal/storage"
	"github.com/openfpl/scout-api/pkg/config"
	"github.com/openfpl/scout-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Loading scout configuration and model paths...")
	scoutCfg, err := config.LoadScoutConfig(cfg.ScoutConfigPath)
	if err != nil {
		log.Fatalf("Failed to load scout config: %v", err)
	}

	modelSet, err := ml.LoadModels(scoutCfg.Models, log)
	if err != nil {
		log.Fatalf("Failed to load models: %v", err)
	}

	// Schedule source: static CSV when configured, the FPL API
	// otherwise.
	var source fixtures.ScheduleSource
	if cfg.FixtureSourceCSV != "" {
		source = fixtures.NewCSVSource(cfg.FixtureSourceCSV)
		log.WithField("path", cfg.FixtureSourceCSV).Info("Using CSV fixture schedule")
	} else {
		source = fixtures.NewFPLClient(cfg.FPLBaseURL, cfg.ExternalAPITimeout, cfg.ExternalAPIRateLimit, cfg.CircuitBreakerThreshold, log)
	}
	resolver := fixtures.NewResolver(source, scoutCfg.TeamNameMapping, log)

	sc := scout.NewScout(scoutCfg, modelSet, resolver, log)
	store := storage.NewScoutStore(cfg.DataDir, log)

	// Prediction cache: Redis when configured, in-memory otherwise.
	var cache services.PredictionCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = services.NewRedisCache(redisClient, time.Duration(cfg.CacheExpiration)*time.Second)
		log.Info("Using Redis prediction cache")
	} else {
		cache = services.NewMemoryCache()
		log.Info("Using in-memory prediction cache")
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Static UI and published data files
	router.Static("/static", cfg.StaticDir)
	router.Static("/data", cfg.DataDir)
	router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticDir, "index.html"))
	})

	apiGroup := router.Group("/api")
	api.SetupRoutes(apiGroup, sc, cache, store, cfg, scoutCfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
