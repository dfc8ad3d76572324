package config

import (
	"encoding/json"
	"fmt"
	"os"

	loggerpkg "github.com/minhyannv/askgpt/pkg/logger"
)

// DefaultPath is the config file location, relative to the working directory.
const DefaultPath = "config.json"

// Store reads and writes the configuration file at a fixed path.
type Store struct {
	path    string
	logger  loggerpkg.Logger
	verbose bool
}

// StoreOption configures optional Store dependencies.
type StoreOption func(*Store)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) StoreOption {
	return func(s *Store) {
		s.logger = l
		s.verbose = verbose
	}
}

// NewStore returns a Store for path. An empty path means DefaultPath.
func NewStore(path string, opts ...StoreOption) *Store {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{path: path, logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored configuration. The boolean is false when the file
// is missing or cannot be parsed; callers then run the wizard.
func (s *Store) Load() (Config, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		loggerpkg.Debug(s.verbose, s.logger, "config not loaded", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return Config{}, false
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		loggerpkg.Warn(s.logger, "config file is not valid, ignoring it", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return Config{}, false
	}

	cfg = Normalize(cfg)
	loggerpkg.Debug(s.verbose, s.logger, "config loaded", map[string]any{
		"path":  s.path,
		"model": cfg.Model,
	})
	return cfg, true
}

// Save overwrites the config file with cfg as indented JSON.
func (s *Store) Save(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("unable to create config file %s: %w", s.path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write config to file %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write config to file %s: %w", s.path, err)
	}

	loggerpkg.Debug(s.verbose, s.logger, "config saved", map[string]any{
		"path":  s.path,
		"bytes": len(data),
	})
	return nil
}
