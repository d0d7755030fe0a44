// Package save persists the player's position and inventory.
package save

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/quizfield/internal/config"
	"chosenoffset.com/quizfield/internal/logging"
)

// Record is what gets saved.
type Record struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Items []string `json:"items"`
	// Map is the active map; empty means keep whatever map is current.
	Map string `json:"map,omitempty"`
}

// Store reads and writes the single save record.
type Store interface {
	// Save overwrites the stored record.
	Save(ctx context.Context, r Record) error
	// Load returns the stored record. ok is false when nothing has been
	// saved yet; that is not an error.
	Load(ctx context.Context) (r Record, ok bool, err error)
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg config.SaveConfig, logger *zap.Logger) (Store, error) {
	logger = logging.OrNop(logger)
	switch cfg.Backend {
	case "", "file":
		logger.Info("using file save store", zap.String("path", cfg.Path))
		return NewFileStore(cfg.Path), nil
	case "redis":
		logger.Info("using redis save store", zap.String("addr", cfg.RedisAddr), zap.String("key", cfg.RedisKey))
		return NewRedisStore(cfg.RedisAddr, cfg.RedisKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.Backend)
	}
}

func encode(r Record) ([]byte, error) {
	if r.Items == nil {
		r.Items = []string{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize save record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("failed to parse save record: %w", err)
	}
	if r.Items == nil {
		r.Items = []string{}
	}
	return r, nil
}
