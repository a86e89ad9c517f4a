package cmd

import (
	"os"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/observability"
)

const binaryName = observability.ServiceName

var (
	cfgFile    string
	verbose    bool
	apiKeyFlag string

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   binaryName,
	Short: "Find local businesses and their contact emails",
	Long: `bizwhiz looks up businesses of a given type around a zip code, collects
their website, phone, and address, scrapes each website for contact emails,
and keeps the results in a table with an outreach status per row.

Use the subcommands to search, review saved results, update statuses, or
serve the web UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Config loading must not emit metrics; serve installs real telemetry later.
	if sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: false}); err == nil {
		telemetry.SetGlobalSystem(sys)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/bizwhiz/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Google Maps API key (or BIZWHIZ_API_KEY)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
}

// initConfig layers .env, the config file, and BIZWHIZ_* variables under
// the command-line flags.
func initConfig() {
	observability.InitCLILogger(binaryName, verbose)
	logger := observability.CLILogger

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir := gfconfig.GetAppConfigDir(binaryName); dir != "" {
			v.AddConfigPath(dir)
			v.SetConfigName("config")
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
			v.SetConfigName("." + binaryName)
		}
		v.AddConfigPath("./config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		logger.Debug("Using config file", zap.String("path", v.ConfigFileUsed()))
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		logger.Debug("No config file found, using defaults and environment variables")
	} else {
		logger.Warn("Error reading config file", zap.Error(err))
	}
}
