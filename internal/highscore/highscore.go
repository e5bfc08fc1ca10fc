// Package highscore persists the best score ever reached.
// A store holds a single integer under Key and never lowers it.
package highscore

import (
	"fmt"

	"github.com/tomz197/invaders/internal/config"
)

// Key names the persisted value.
const Key = "emojiInvaderHighScore"

// Store loads and saves the high score. Implementations are safe for
// concurrent use, since SSH sessions share one store.
type Store interface {
	// Load returns the saved high score, or 0 when nothing was saved yet.
	Load() (int, error)
	// Save records score if it beats the saved value.
	Save(score int) error
	Close() error
}

// New creates the store selected by cfg.Backend.
func New(cfg config.HighScoreConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown high score backend: %s", cfg.Backend)
	}
}
