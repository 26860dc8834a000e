package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sphaso/treap/pkg/pipeline"
)

// Config holds the settings read from the config file. Every field has a
// built-in default, the config file overrides the defaults, and flags
// override the file.
type Config struct {
	// Style is the default label style: "compact" or "verbose".
	Style string `toml:"style"`

	// Seed is the default random seed for tree building.
	Seed uint64 `toml:"seed"`

	// Formats are the default export formats.
	Formats []string `toml:"formats"`

	// CacheDir overrides the render cache location (~/.cache/treap).
	CacheDir string `toml:"cache_dir"`

	// TreeDir overrides where named trees are stored (~/.config/treap/trees).
	TreeDir string `toml:"tree_dir"`

	// Store selects the tree store backend: "file", "memory", or "mongo".
	Store string `toml:"store"`

	// Addr is the listen address for `treap serve`.
	Addr string `toml:"addr"`

	// Redis enables the Redis render cache when an address is set.
	Redis RedisConfig `toml:"redis"`

	// Mongo configures the MongoDB tree store.
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig is the [redis] section of the config file.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig is the [mongo] section of the config file.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Style: pipeline.DefaultStyle,
		Seed:  pipeline.DefaultSeed,
		Store: "file",
	}
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error: the built-in defaults are
// returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Style != "" {
		if err := pipeline.ValidateStyle(cfg.Style); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// configPath returns the default config file location
// (~/.config/treap/config.toml, honoring XDG_CONFIG_HOME).
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// configDir returns the treap config directory.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
