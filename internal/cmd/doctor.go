package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/observability"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long:  "Run diagnostic checks on configuration, the API key, and the result store, and suggest fixes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := observability.CLILogger

		logger.Info("=== " + binaryName + " doctor ===")
		logger.Info("")

		allChecks := true
		totalChecks := 5

		// Check 1: runtime and libraries
		version := crucible.GetVersion()
		logger.Info(fmt.Sprintf("[1/%d] Checking runtime... ✅ %s %s/%s (gofulmen %s)", totalChecks, runtime.Version(), runtime.GOOS, runtime.GOARCH, version.Gofulmen),
			zap.String("go_version", runtime.Version()),
			zap.String("gofulmen_version", version.Gofulmen),
			zap.String("crucible_version", version.Crucible))

		// Check 2: configuration
		cfg, cfgErr := loadConfig()
		switch {
		case cfgErr != nil:
			logger.Error(fmt.Sprintf("[2/%d] Checking configuration... ❌ %v", totalChecks, cfgErr))
			allChecks = false
		case viper.ConfigFileUsed() != "":
			logger.Info(fmt.Sprintf("[2/%d] Checking configuration... ✅ %s", totalChecks, viper.ConfigFileUsed()))
		default:
			logger.Info(fmt.Sprintf("[2/%d] Checking configuration... ✅ defaults and %s_* environment", totalChecks, config.EnvPrefix))
		}
		if cfgErr != nil {
			logger.Warn("⚠️  Remaining checks skipped (config not loaded)")
			return cfgErr
		}

		// Check 3: API key presence; the key itself is never printed
		if strings.TrimSpace(cfg.APIKey) != "" {
			logger.Info(fmt.Sprintf("[3/%d] Checking API key... ✅ configured", totalChecks))
		} else {
			logger.Warn(fmt.Sprintf("[3/%d] Checking API key... ⚠️  not configured (set %s_API_KEY or add it to .env; you will be prompted)", totalChecks, config.EnvPrefix))
		}

		// Check 4: places endpoint
		if u, err := url.Parse(cfg.Places.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			logger.Error(fmt.Sprintf("[4/%d] Checking places endpoint... ❌ invalid base URL %q", totalChecks, cfg.Places.BaseURL))
			allChecks = false
		} else {
			logger.Info(fmt.Sprintf("[4/%d] Checking places endpoint... ✅ %s", totalChecks, u.Redacted()))
		}

		// Check 5: result store
		location := cfg.Store.URL
		if location == "" {
			location, _ = filepath.Abs(cfg.Store.Path)
		}
		rs, err := openResultStore(ctx, cfg)
		if err != nil {
			logger.Error(fmt.Sprintf("[5/%d] Checking result store... ❌ %s (%v)", totalChecks, location, err))
			allChecks = false
		} else {
			defer rs.Close() //nolint:errcheck
			records, loadErr := rs.Load(ctx)
			switch {
			case loadErr != nil:
				logger.Error(fmt.Sprintf("[5/%d] Checking result store... ❌ %s (%v)", totalChecks, location, loadErr))
				allChecks = false
			case cfg.Store.URL == "" && !fileExists(location):
				logger.Info(fmt.Sprintf("[5/%d] Checking result store... ✅ %s (%s, not created yet)", totalChecks, location, cfg.Store.Driver))
			default:
				logger.Info(fmt.Sprintf("[5/%d] Checking result store... ✅ %s (%s, %d saved results)", totalChecks, location, cfg.Store.Driver, len(records)),
					zap.Int("saved_results", len(records)))
			}
		}

		logger.Info("")
		if !allChecks {
			logger.Warn("⚠️  Some checks failed. Review the output above for details.")
			return fmt.Errorf("doctor checks failed")
		}
		logger.Info(fmt.Sprintf("✅ All checks passed! Your %s installation is healthy.", binaryName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
