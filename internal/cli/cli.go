// Package cli implements the jyotish command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/jyotish/internal/config"
	"github.com/matzehuels/jyotish/pkg/buildinfo"
	"github.com/matzehuels/jyotish/pkg/cache"
	"github.com/matzehuels/jyotish/pkg/ephemeris"
	"github.com/matzehuels/jyotish/pkg/ephemeris/remote"
	"github.com/matzehuels/jyotish/pkg/ephemeris/static"
	"github.com/matzehuels/jyotish/pkg/ephemeris/tz"
	jio "github.com/matzehuels/jyotish/pkg/io"
	"github.com/matzehuels/jyotish/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jyotish"
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

	// Zones finds the timezone of births without one. Nil loads the
	// embedded boundary dataset on first use.
	Zones ephemeris.ZoneFinder

	configFile string
	viper      *viper.Viper
	cfg        config.Config
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
		Use:   appName,
		Short: "Jyotish computes Vedic birth charts, divisional charts, dashas and synastry",
		Long: `Jyotish turns birth data into a sidereal chart and everything derived from it:
the sixteen divisional charts, the Vimshottari dasha timeline, the daily
panchang and relationship synastry between two to four people.

Planet positions come from an ephemeris service (ephemeris.url) or from
positions embedded in a profile file.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default .jyotish.toml in . or $HOME)")

	root.AddCommand(c.chartCommand())
	root.AddCommand(c.vargasCommand())
	root.AddCommand(c.dashaCommand())
	root.AddCommand(c.alignmentCommand())
	root.AddCommand(c.synastryCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads configuration and applies its log level. main raises
// the level afterwards when --verbose is set.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	c.viper = config.New(c.configFile)
	cfg, err := config.Load(c.viper)
	if err != nil {
		return err
	}
	c.cfg = cfg

	level, _ := cfg.LogLevel()
	c.SetLogLevel(level)
	if used := c.viper.ConfigFileUsed(); used != "" {
		c.Logger.Debug("loaded config", "file", used)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// runFlags are the flags shared by every command that resolves positions.
type runFlags struct {
	refresh bool
	noCache bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached positions")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// newRunner creates a pipeline runner for CLI use. Positions embedded in
// profiles take precedence over the ephemeris service, and cache keys are
// scoped to that service.
func (c *CLI) newRunner(ctx context.Context, flags runFlags, profiles ...jio.Profile) (*pipeline.Runner, error) {
	ch := c.openCache(ctx, flags.noCache)

	var (
		next  ephemeris.Resolver
		keyer cache.Keyer
	)
	if c.cfg.Ephemeris.URL != "" {
		keyer = cache.ServiceKeyer(c.cfg.Ephemeris.URL)
		rc := c.cfg.RemoteConfig(flags.refresh)
		rc.Logger = c.Logger
		rr, err := remote.New(rc, ch, keyer)
		if err != nil {
			ch.Close()
			return nil, err
		}
		next = rr
	}

	zones := c.zones()
	resolver := static.Over(next)
	if n := jio.Register(resolver, zones, profiles...); n > 0 {
		c.Logger.Debug("using embedded positions", "profiles", n)
	}
	return pipeline.NewRunner(resolver, zones, ch, keyer, c.Logger), nil
}

// openCache opens the configured backend. A backend that cannot be reached
// degrades to no caching.
func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.Disabled()
	}
	ch, err := cache.Open(ctx, c.cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.cfg.Cache.Backend, "error", err)
		return cache.Disabled()
	}
	return ch
}

func (c *CLI) zones() ephemeris.ZoneFinder {
	if c.Zones != nil {
		return c.Zones
	}
	f, err := tz.Default()
	if err != nil {
		c.Logger.Warn("timezone lookup unavailable, reading births without a timezone as UTC", "error", err)
		return nil
	}
	c.Zones = f
	return f
}

// options builds pipeline options from configuration.
func (c *CLI) options(flags runFlags) pipeline.Options {
	return pipeline.Options{Refresh: flags.refresh, TTL: c.cfg.Cache.TTL}
}
