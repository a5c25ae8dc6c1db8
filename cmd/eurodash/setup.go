package main

import (
	"fmt"

	"github.com/ruminaider/eurodash/internal/config"
	"github.com/ruminaider/eurodash/internal/dataset"
	"github.com/ruminaider/eurodash/internal/logging"
	"github.com/ruminaider/eurodash/internal/paths"
)

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return paths.ConfigFile()
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig() (config.Config, error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// openLogger opens the JSON log file. The terminal belongs to the
// dashboard, so nothing is logged to stderr.
func openLogger(cfg config.Config) (*logging.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		path = paths.LogFile()
	}
	return logging.New(path, cfg.LogLevel)
}

func newClient(cfg config.Config, logger *logging.Logger) (*dataset.Client, error) {
	return dataset.NewClient(dataset.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Logger:    logger.Component("client"),
	})
}

// setup loads the config and builds the logger and client every data
// command needs. The caller closes the logger.
func setup() (config.Config, *logging.Logger, *dataset.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger, err := openLogger(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		logger.Close()
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, client, nil
}
