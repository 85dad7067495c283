// Package config provides configuration management for azindex using Viper.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/azindex/azindex/internal/errors"
	"github.com/azindex/azindex/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// DocsRoot is the default documentation tree for `azindex extract`.
	DocsRoot string `mapstructure:"docs_root" yaml:"docs_root"`

	// DataDir is where artifacts are written and read.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// Init initializes Viper with defaults and search paths. Call once at
// application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths in order of precedence.
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), paths.AppName))

	viper.SetEnvPrefix("AZINDEX")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("data_dir", paths.DefaultDataDir())
}

// Load reads the configuration file. With an explicit path the file must
// exist; with an empty path a missing file falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if cfg.DataDir == "" {
		cfg.DataDir = paths.DefaultDataDir()
	}

	return &cfg, nil
}
