// Package config holds the webclip configuration and its viper-backed loader.
//
// Configuration is resolved from (lowest to highest precedence) built-in
// defaults, an optional ~/.webclip.yaml file, WEBCLIP_* environment variables,
// and bound command-line flags. The resulting Config value is threaded
// explicitly into every component constructor; nothing reads the environment
// deeper in the call graph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultTimestampFormat is the Go reference layout used for the
// `- **Captured**:` line when no custom format is configured.
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// Config controls where clips are stored and how records are formatted.
type Config struct {
	// ClipsDirectory is the root directory for clip files and images.
	ClipsDirectory string `mapstructure:"clips_directory" validate:"required"`

	// CreateSubdirs organizes clips into one subdirectory per host.
	// When false, clip files land directly in ClipsDirectory with the
	// host embedded in the filename.
	CreateSubdirs bool `mapstructure:"create_subdirs"`

	// IncludeTitle keeps the page title in the clip heading.
	IncludeTitle bool `mapstructure:"include_title"`

	// IncludeTimestamp adds a capture timestamp line to each record.
	IncludeTimestamp bool `mapstructure:"include_timestamp"`

	// TimestampFormat is the Go time layout for the timestamp line.
	TimestampFormat string `mapstructure:"timestamp_format" validate:"required"`
}

// Default returns the built-in configuration: ~/clips, per-host
// subdirectories, titles and timestamps on.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		ClipsDirectory:   filepath.Join(home, "clips"),
		CreateSubdirs:    true,
		IncludeTitle:     true,
		IncludeTimestamp: true,
		TimestampFormat:  DefaultTimestampFormat,
	}
}

// Load resolves the configuration from the given viper instance, applying
// defaults for unset keys and validating the result. Callers bind flags and
// environment variables before calling Load.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault("clips_directory", def.ClipsDirectory)
	v.SetDefault("create_subdirs", def.CreateSubdirs)
	v.SetDefault("include_title", def.IncludeTitle)
	v.SetDefault("include_timestamp", def.IncludeTimestamp)
	v.SetDefault("timestamp_format", def.TimestampFormat)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	cfg.ClipsDirectory = expandHome(cfg.ClipsDirectory)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for required fields.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EnsureDirectory creates the clips directory if it does not exist.
func (c Config) EnsureDirectory() error {
	if err := os.MkdirAll(c.ClipsDirectory, 0o755); err != nil {
		return fmt.Errorf("creating clips directory %s: %w", c.ClipsDirectory, err)
	}
	return nil
}

// ImagesDirectory is where downloaded and pasted images are stored.
func (c Config) ImagesDirectory() string {
	return filepath.Join(c.ClipsDirectory, "images")
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
