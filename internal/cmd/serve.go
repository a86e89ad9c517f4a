package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/core/store"
	apperrors "github.com/bizwhiz/bizwhiz/internal/errors"
	"github.com/bizwhiz/bizwhiz/internal/metrics"
	"github.com/bizwhiz/bizwhiz/internal/observability"
	"github.com/bizwhiz/bizwhiz/internal/server"
	"github.com/bizwhiz/bizwhiz/internal/server/handlers"
)

var (
	serverPort int
	serverHost string
)

// storeHealthChecker reports whether the saved results can be read.
func storeHealthChecker(rs store.ResultStore) handlers.HealthCheckerFunc {
	return func(ctx context.Context) error {
		if _, err := rs.Load(ctx); err != nil {
			return apperrors.Wrap(ctx, apperrors.CodeStore, err, "result store unavailable")
		}
		return nil
	}
}

// telemetryHealthChecker ensures telemetry system and exporter are available
func telemetryHealthChecker(enabled bool) handlers.HealthCheckerFunc {
	return func(ctx context.Context) error {
		if !enabled {
			return nil
		}
		if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
			return errors.New("telemetry system not initialized")
		}
		return nil
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start the web UI: a search form, the results table with a status selector
per row, and a JSON API over the same result store.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (log level only; restart for other settings)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		observability.InitServerLogger(binaryName, cfg.Logging.Level)
		logger := observability.ServerLogger

		if cfg.Metrics.Enabled {
			if err := observability.InitMetrics(binaryName, cfg.Metrics.Port); err != nil {
				logger.Error("Failed to initialize metrics", zap.Error(err))
				return apperrors.Wrap(ctx, apperrors.CodeInternal, err, "metrics initialization failed")
			}
		}

		apiKey, err := resolveAPIKey(cfg)
		if err != nil {
			return err
		}

		rs, err := openResultStore(ctx, cfg)
		if err != nil {
			return err
		}

		logger.Info("Initializing server",
			zap.String("service", binaryName),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("store_driver", cfg.Store.Driver),
			zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
			zap.Int("metrics_port", observability.GetMetricsPort()))

		hm := handlers.NewHealthManager(versionInfo.Version)
		hm.RegisterChecker("result_store", storeHealthChecker(rs))
		hm.RegisterChecker("telemetry", telemetryHealthChecker(cfg.Metrics.Enabled))

		results := &handlers.ResultsHandler{
			Store:    rs,
			Searcher: newSearcher(cfg, rs, apiKey),
		}
		srv := server.New(cfg.Server, results, hm)

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Registered LIFO: the last handler runs first.
		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Flushing logger...")
			if err := logger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			if err := rs.Close(); err != nil {
				logger.Warn("Closing result store failed", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return apperrors.Wrap(ctx, apperrors.CodeInternal, err, "server shutdown failed")
			}

			logger.Info("HTTP server stopped gracefully")
			return nil
		})

		signals.OnReload(func(ctx context.Context) error {
			logger.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					logger.Info("No config file found - using defaults and environment variables")
					return nil
				}
				logger.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return asConfigError(err)
			}

			reloaded, err := loadConfig()
			if err != nil {
				logger.Error("Reloaded config is invalid", zap.Error(err))
				return err
			}
			observability.InitServerLogger(binaryName, reloaded.Logging.Level)
			logger = observability.ServerLogger
			logger.Info("Configuration reloaded",
				zap.String("file", viper.ConfigFileUsed()),
				zap.String("log_level", reloaded.Logging.Level))
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		errChan := make(chan error, 1)
		go func() {
			logger.Info("Starting HTTP server...", zap.String("addr", srv.Addr()))
			metrics.SetServerStartTime(time.Now().Unix())
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		go func() {
			if err := signals.Listen(ctx); err != nil {
				logger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		if err := <-errChan; err != nil {
			return apperrors.Wrap(ctx, apperrors.CodeInternal, err, "server error")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
