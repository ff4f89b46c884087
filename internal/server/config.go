package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/config"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address     string               `yaml:"address"`
	MaxBodySize int64                `yaml:"maxBodySize"`
	DataDir     string               `yaml:"dataDir"`
	Logging     config.LoggingConfig `yaml:"logging"`
}

// LoadConfig loads the server configuration from YAML. If the file does not
// exist, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: constants.DefaultMaxBodySizeBytes,
		DataDir:     constants.DefaultDataDir,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if cfg.Address == "" {
		cfg.Address = constants.DefaultServerAddress
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if cfg.DataDir == "" {
		cfg.DataDir = constants.DefaultDataDir
	}
	return cfg, nil
}
