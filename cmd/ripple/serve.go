package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ripple-dev/ripple/internal/config"
	"github.com/ripple-dev/ripple/pkg/metrics"
	"github.com/ripple-dev/ripple/pkg/ripple"
	"github.com/ripple-dev/ripple/pkg/server"
	"github.com/ripple-dev/ripple/pkg/tracing"
)

func serveCmd() *cobra.Command {
	var configPath string
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the store server",
		Long: `Start the HTTP/WebSocket server.

Stores and derived stores declared in the configuration file are seeded
at startup. Without a configuration file the server starts empty; stores
are created on first write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			if _, err := os.Stat(configPath); err == nil {
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			} else if cmd.Flags().Changed("config") {
				return fmt.Errorf("config file %s not found", configPath)
			} else {
				// No config file: start empty with defaults.
				cfg, _ = config.Parse([]byte("{}"))
			}

			if address != "" {
				cfg.Address = address
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var observers []ripple.Observer
			metricsEnabled := cfg.Metrics.Enabled != nil && *cfg.Metrics.Enabled
			if metricsEnabled {
				observers = append(observers, metrics.NewObserver(
					metrics.WithNamespace(cfg.Metrics.Namespace),
				))
			}
			if cfg.Tracing.Enabled {
				observers = append(observers, tracing.NewObserver(
					tracing.WithTracerName(cfg.Tracing.TracerName),
				))
			}

			opts := []ripple.Option{ripple.WithLogger(logger)}
			if len(observers) > 0 {
				opts = append(opts, ripple.WithObserver(ripple.MultiObserver(observers...)))
			}

			reg := ripple.New(opts...)
			cfg.Seed(reg)

			srvCfg := server.DefaultConfig()
			srvCfg.Address = cfg.Address
			srvCfg.ShutdownTimeout = cfg.ShutdownTimeout.StdDuration()
			srvCfg.WatchBuffer = cfg.WatchBuffer
			srvCfg.EnableMetrics = metricsEnabled

			srv := server.New(reg, srvCfg)
			srv.SetLogger(logger.With("component", "server"))
			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "path to configuration file")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (overrides config)")
	return cmd
}
