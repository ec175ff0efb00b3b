package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const configName = "gocat.toml"

// Config represents a gocat.toml file.
type Config struct {
	DepthLimit int           `toml:"depth-limit"`
	StepLimit  int           `toml:"step-limit"`
	Timeout    time.Duration `toml:"timeout"`

	// Prelude lists source files, relative to Dir, loaded before any input.
	Prelude []string `toml:"prelude"`

	// Words maps names to the source text of their definitions.
	Words map[string]string `toml:"words"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

// LoadConfig parses a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if cfg.DepthLimit < 0 || cfg.StepLimit < 0 || cfg.Timeout < 0 {
		return nil, fmt.Errorf("%s: limits must not be negative", path)
	}
	return &cfg, nil
}

// FindConfig walks up from startDir to find a gocat.toml file, then loads and
// returns it. Returns nil if no config is found.
func FindConfig(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, configName)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// PreludePaths returns absolute paths for the configured prelude files.
func (cfg *Config) PreludePaths() []string {
	var paths []string
	for _, p := range cfg.Prelude {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.Dir, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// Options returns session options for the configured limits.
func (cfg *Config) Options() Option {
	var opts []Option
	if cfg.DepthLimit > 0 {
		opts = append(opts, WithDepthLimit(cfg.DepthLimit))
	}
	if cfg.StepLimit > 0 {
		opts = append(opts, WithStepLimit(cfg.StepLimit))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	return Options(opts...)
}
