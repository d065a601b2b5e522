package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/buildinfo"
	"github.com/matzehuels/wiregraph/pkg/cache"
	"github.com/matzehuels/wiregraph/pkg/config"
	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/render/dot"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wiregraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wiregraph keeps schematic wire drawings electrically canonical",
		Long:         `Wiregraph is an engine for orthogonal wire drawings. It applies edits, re-resolves the drawing into canonical form (merged endpoints, split T-junctions, collapsed straight runs, connected nets) and reports what changed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config, Engine and Renderer Factories
// =============================================================================

// loadConfig reads --config, or the default path when it exists, falling back
// to built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return config.Default(), nil
		}
		if _, err := os.Stat(path); err != nil {
			return config.Default(), nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// newEngine builds an engine from the configuration.
func (c *CLI) newEngine(cfg config.Config) *engine.Engine {
	return engine.New(cfg.EngineOptions(c.Logger))
}

// newRenderer builds an SVG renderer backed by the file cache unless caching
// is off.
func (c *CLI) newRenderer(cfg config.Config) dot.Renderer {
	return dot.Renderer{
		Cache:  c.newCache(cfg),
		Keyer:  cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":"),
		Logger: c.Logger,
	}
}

func (c *CLI) newCache(cfg config.Config) cache.Cache {
	if c.noCache || !cfg.Render.Cache {
		return cache.NewNullCache()
	}
	dir, err := renderCacheDir(cfg)
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("render cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return cache.Instrument(fc)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wiregraph/).
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

// sessionDir returns $WIREGRAPH_SESSIONS, or "" for the store's default.
func sessionDir() string {
	return os.Getenv("WIREGRAPH_SESSIONS")
}

// renderCacheDir honours render.cache_dir before the XDG default.
func renderCacheDir(cfg config.Config) (string, error) {
	if cfg.Render.CacheDir != "" {
		if err := errors.ValidatePath(cfg.Render.CacheDir); err != nil {
			return "", err
		}
		return cfg.Render.CacheDir, nil
	}
	return cacheDir()
}
