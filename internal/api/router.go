package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/api/handlers"
	"github.com/openfpl/scout-api/internal/api/middleware"
	"github.com/openfpl/scout-api/internal/scout"
	"github.com/openfpl/scout-api/internal/services"
	"github.com/openfpl/scout-api/internal/storage"
	"github.com/openfpl/scout-api/pkg/config"
)

// SetupRoutes configures the API surface under /api.
func SetupRoutes(group *gin.RouterGroup, sc *scout.Scout, cache services.PredictionCache, store *storage.ScoutStore, cfg *config.Config, scoutCfg *config.ScoutConfig, logger *logrus.Logger) {
	scoutHandler := handlers.NewScoutHandler(sc, cache, store, scoutCfg, logger)

	group.GET("", handlers.Info)
	group.GET("/health", handlers.Health)

	authed := group.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.ValidAPIKeys, logger))
	{
		authed.POST("/scout", scoutHandler.GenerateTeam)
		authed.GET("/scout/:gameweek", scoutHandler.GetTeam)
	}
}
