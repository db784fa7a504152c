package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"daily-journal/internal/client"
	envcfg "daily-journal/pkg/config"
)

// fileSettings is the optional YAML config file:
//
//	server: http://localhost:3000
//	timeout: 10s
//	requests_per_second: 5
type fileSettings struct {
	Server            string  `yaml:"server"`
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "journal", "config.yaml")
}

// loadFileSettings reads path. A missing file yields zero settings.
func loadFileSettings(path string) (fileSettings, error) {
	var s fileSettings
	if path == "" {
		return s, nil
	}
	// #nosec G304 -- path comes from the --config flag or the user config dir
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return s, nil
}

// clientConfig layers flags over JOURNAL_* env vars over the config file.
func (o *rootOptions) clientConfig() (client.Config, error) {
	file, err := loadFileSettings(o.configPath)
	if err != nil {
		return client.Config{}, err
	}

	cfg := client.Config{
		BaseURL:           envcfg.GetEnvString("JOURNAL_SERVER", "http://localhost:3000"),
		Timeout:           envcfg.GetEnvDuration("JOURNAL_TIMEOUT", 10*time.Second),
		RequestsPerSecond: file.RequestsPerSecond,
		Burst:             1,
	}
	if file.Server != "" && os.Getenv("JOURNAL_SERVER") == "" {
		cfg.BaseURL = file.Server
	}
	if file.Timeout != "" && os.Getenv("JOURNAL_TIMEOUT") == "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return client.Config{}, fmt.Errorf("config file timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if o.server != "" {
		cfg.BaseURL = o.server
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	return cfg, nil
}
