package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Storage backends for saved grids
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds the configuration for the game
type Config struct {
	Rows                int           `json:"rows"`
	Columns             int           `json:"columns"`
	FrameRate           time.Duration `json:"frame_rate"`
	Density             float64       `json:"density"`
	Seed                uint64        `json:"seed"`
	Patterns            bool          `json:"patterns"`
	UpdateMode          string        `json:"update_mode"`
	MaxGenerations      int           `json:"max_generations"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	ClearScreen         bool          `json:"clear_screen"`
	StatePath           string        `json:"state_path"`
	Codec               string        `json:"codec"`
	Storage             string        `json:"storage"`
	SQLitePath          string        `json:"sqlite_path"`
	DatabaseURL         string        `json:"database_url"`
	LogLevel            string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:                20,
		Columns:             40,
		FrameRate:           time.Second,
		Density:             0.5,
		UpdateMode:          "sequential",
		MaxGenerations:      0, // run until interrupted
		StagnationThreshold: 0,
		ClearScreen:         true,
		StatePath:           "grid.json",
		Codec:               "json",
		Storage:             StorageFile,
		SQLitePath:          "gameoflife.db",
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the values a run cannot start without
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return errors.Errorf("[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	}
	if c.Density < 0 || c.Density > 1 {
		return errors.Errorf("[Validate] density must be within [0, 1], got %v", c.Density)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame_rate must not be negative, got %v", c.FrameRate)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("[Validate] postgres storage needs database_url or DATABASE_URL")
		}
	default:
		return errors.Errorf("[Validate] unknown storage: %q", c.Storage)
	}
	return nil
}
