package cli

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jyotish/internal/config"
	"github.com/matzehuels/jyotish/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		run  runFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Long: `Serve charts, divisional charts, dashas, synastry and alignment as a
JSON API. The listen address defaults to server.addr (:8080).

Changes to the log level in the config file apply without a restart.`,
		Example: `  jyotish serve
  jyotish serve --addr 127.0.0.1:9000
  JYOTISH_CACHE_BACKEND=redis jyotish serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, run)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.watchConfig()
			if c.cfg.Ephemeris.URL == "" {
				c.Logger.Warn("no ephemeris service configured, every chart request will fail", "key", "ephemeris.url")
			}
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	run.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

// watchConfig reloads the log level when the config file changes. Other
// settings take effect on restart.
func (c *CLI) watchConfig() {
	if c.viper == nil || c.viper.ConfigFileUsed() == "" {
		return
	}
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := config.Load(c.viper)
		if err != nil {
			c.Logger.Warn("ignoring config change", "file", e.Name, "error", err)
			return
		}
		level, _ := cfg.LogLevel()
		c.SetLogLevel(level)
		c.Logger.Info("reloaded config", "file", e.Name, "level", level)
	})
	c.viper.WatchConfig()
}
