// Package cli implements the treap command-line interface.
//
// The CLI builds treaps from key/value input, draws them as Unicode tree
// art, and exports them to graphical formats. Commands are thin shells
// around pkg/pipeline so the CLI, the HTTP API, and library callers all
// share one rendering path.
//
// # Commands
//
// The main commands are:
//   - draw: Build a treap and print it as tree art
//   - build: Build a treap and write its JSON document
//   - export: Render a tree document to text, DOT, SVG, PNG, PDF, or JSON
//   - play: Edit a treap interactively and watch it rebalance
//   - serve: Serve the HTTP API
//   - cache: Inspect or clear the render cache
//
// # Configuration
//
// Built-in defaults are overridden by ~/.config/treap/config.toml, which in
// turn is overridden by flags. All commands support --verbose (-v) for
// debug-level logging; loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sphaso/treap/pkg/buildinfo"
	"github.com/sphaso/treap/pkg/cache"
	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "treap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and built-in
// configuration. The config file, if present, is merged in by the root
// command's PersistentPreRun so that --config can point elsewhere.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "treap",
		Short: "Treap draws treaps as Unicode tree art",
		Long: `Treap builds randomized binary search trees (treaps) from key/value input
and draws them as aligned Unicode tree art, with every parent centered above
its children. Trees can be saved as JSON documents, re-drawn, exported to
DOT/SVG/PNG/PDF, and served over a small HTTP API.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error once, with an exit code
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.config/treap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand creates the version command. The same information is
// available through --version; this form is easier to script against.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buildinfo.String())
		},
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the configuration: Redis when an address is configured, otherwise a
// file cache under the cache directory.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(cmd, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Redis.Addr != "" {
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	}
	dir, err := c.renderCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Store Factory
// =============================================================================

// openStore opens the tree store selected by the configuration. The default
// is a file store under the config directory; "mongo" needs a URI in the
// [mongo] section. Callers must Close the returned store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	switch c.Config.Store {
	case "", "file":
		return store.NewFileStore(c.Config.TreeDir)
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		if c.Config.Mongo.URI == "" {
			return nil, fmt.Errorf("store backend mongo needs mongo.uri in the config")
		}
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      c.Config.Mongo.URI,
			Database: c.Config.Mongo.Database,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q (must be file, memory, or mongo)", c.Config.Store)
	}
}

// =============================================================================
// Paths
// =============================================================================

// renderCacheDir returns the render cache directory: the configured one if
// set, otherwise the XDG standard location.
func (c *CLI) renderCacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

// cacheDir returns the default cache directory using the XDG standard
// (~/.cache/treap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the configuration. Flags that
// the user set explicitly overwrite these in the command's RunE.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Seed:    c.Config.Seed,
		Style:   c.Config.Style,
		Formats: append([]string(nil), c.Config.Formats...),
		Logger:  c.Logger,
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string falls back to the configured formats, then to text.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if len(c.Config.Formats) != 0 {
			return append([]string(nil), c.Config.Formats...)
		}
		return []string{pipeline.FormatText}
	}
	return strings.Split(s, ",")
}
