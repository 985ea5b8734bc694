package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/internal/models"
)

// ErrNotFound is returned when no document exists for a gameweek.
var ErrNotFound = errors.New("scout document not found")

// ScoutStore is a write-once-if-absent JSON document store keyed by
// gameweek. A second save for the same gameweek is a no-op; documents
// are immutable once written.
type ScoutStore struct {
	root   string
	logger *logrus.Logger
}

func NewScoutStore(root string, logger *logrus.Logger) *ScoutStore {
	return &ScoutStore{
		root:   filepath.Join(root, "scout"),
		logger: logger,
	}
}

func (s *ScoutStore) path(gameweek int) string {
	return filepath.Join(s.root, fmt.Sprintf("gw-%d.json", gameweek))
}

// Exists reports whether a document has been written for the gameweek.
func (s *ScoutStore) Exists(gameweek int) bool {
	_, err := os.Stat(s.path(gameweek))
	return err == nil
}

// Save writes the document unless one already exists for its gameweek.
func (s *ScoutStore) Save(doc *models.ScoutDocument) error {
	if s.Exists(doc.Gameweek) {
		s.logger.WithField("gameweek", doc.Gameweek).Debug("Scout document already persisted, skipping write")
		return nil
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scout document: %w", err)
	}

	if err := os.WriteFile(s.path(doc.Gameweek), body, 0o644); err != nil {
		return fmt.Errorf("failed to write scout document: %w", err)
	}

	s.logger.WithField("gameweek", doc.Gameweek).Info("Persisted scout document")
	return nil
}

// Load reads the persisted document for a gameweek.
func (s *ScoutStore) Load(gameweek int) (*models.ScoutDocument, error) {
	body, err := os.ReadFile(s.path(gameweek))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read scout document: %w", err)
	}

	var doc models.ScoutDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scout document: %w", err)
	}
	return &doc, nil
}
