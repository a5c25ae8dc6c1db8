package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruminaider/eurodash/internal/config"
)

// ErrConfigExists is returned by ConfigInit when path already exists.
var ErrConfigExists = errors.New("config already exists")

// ConfigInit writes the default dashboard config to path. An existing file
// is only replaced when force is set.
func ConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w at %s (use --force to overwrite)", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := config.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ConfigValidate loads the config at path and validates it.
func ConfigValidate(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
