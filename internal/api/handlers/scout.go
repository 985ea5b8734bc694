package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/models"
	"github.com/openfpl/scout-api/internal/scout"
	"github.com/openfpl/scout-api/internal/services"
	"github.com/openfpl/scout-api/internal/storage"
	"github.com/openfpl/scout-api/pkg/config"
	"github.com/openfpl/scout-api/pkg/utils"
)

type ScoutHandler struct {
	scout  *scout.Scout
	cache  services.PredictionCache
	store  *storage.ScoutStore
	cfg    *config.ScoutConfig
	logger *logrus.Logger
}

func NewScoutHandler(sc *scout.Scout, cache services.PredictionCache, store *storage.ScoutStore, cfg *config.ScoutConfig, logger *logrus.Logger) *ScoutHandler {
	return &ScoutHandler{
		scout:  sc,
		cache:  cache,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// GenerateTeam handles the upload-driven pipeline: parse the player
// history CSV, predict expected points for the next gameweek (reusing
// cached predictions when present) and select the optimal squad. The
// result is persisted write-once per gameweek.
func (h *ScoutHandler) GenerateTeam(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "Missing uploaded player data file", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("scout-upload-%s.csv", uuid.New().String()))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.SendInternalError(c, "Failed to store uploaded file")
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			h.logger.WithField("path", tmpPath).Warn("Failed to delete temporary upload")
		}
	}()

	records, err := scout.ReadRecordsFile(tmpPath, h.cfg)
	if err != nil {
		utils.SendValidationError(c, "Invalid player data", err.Error())
		return
	}

	gameweek := scout.NextGameweek(records)
	ctx := c.Request.Context()

	// Check-then-write without a lock: concurrent misses for the same
	// gameweek may compute twice, which is accepted.
	predictions, err := h.cache.Get(ctx, gameweek)
	switch {
	case err == nil:
		h.logger.WithField("gameweek", gameweek).Info("Using cached predictions")
	case errors.Is(err, services.ErrCacheMiss):
		predictions, err = h.scout.PredictPlayers(ctx, records, gameweek)
		if err != nil {
			utils.SendInternalError(c, err.Error())
			return
		}
		if err := h.cache.Set(ctx, gameweek, predictions); err != nil {
			h.logger.WithField("gameweek", gameweek).Warnf("Failed to cache predictions: %v", err)
		}
	default:
		h.logger.WithField("gameweek", gameweek).Warnf("Prediction cache unavailable: %v", err)
		predictions, err = h.scout.PredictPlayers(ctx, records, gameweek)
		if err != nil {
			utils.SendInternalError(c, err.Error())
			return
		}
	}

	doc := &models.ScoutDocument{
		ScoutTeam:    h.scout.SelectOptimalTeam(predictions),
		PlayerPoints: predictions,
		Gameweek:     gameweek,
		Version:      scout.Version,
	}

	if err := h.store.Save(doc); err != nil {
		h.logger.WithField("gameweek", gameweek).Errorf("Failed to persist scout document: %v", err)
	}

	utils.SendSuccess(c, doc)
}

// GetTeam returns the persisted scout document for a gameweek.
func (h *ScoutHandler) GetTeam(c *gin.Context) {
	gameweek, err := strconv.Atoi(c.Param("gameweek"))
	if err != nil || gameweek < 1 || gameweek > scout.GameweekThreshold {
		utils.SendValidationError(c, "Invalid gameweek", c.Param("gameweek"))
		return
	}

	doc, err := h.store.Load(gameweek)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.SendNotFound(c, fmt.Sprintf("No scout team generated for gameweek %d", gameweek))
			return
		}
		utils.SendInternalError(c, err.Error())
		return
	}

	utils.SendSuccess(c, doc)
}
