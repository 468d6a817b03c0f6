// internal/commands/root.go
package hazardbench

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hazardbench",
	Short: "hazardbench — vision-model hazard assessment of factory imagery, benchmarked two ways",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			val := viper.GetBool("debug")
			_ = cmd.Flags().Set("debug", strconv.FormatBool(val))
		}
		for _, name := range []string{"provider", "model", "judgeModel", "ollamaUrl", "output", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("timeout") {
			_ = cmd.Flags().Set("timeout", strconv.Itoa(viper.GetInt("timeout")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		cfg.APIKey = appconfig.LoadAPIKey()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.json", "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("provider", "", "vision provider (gemini or ollama)")
	rootCmd.PersistentFlags().String("model", "", "vision model used for hazard assessment")
	rootCmd.PersistentFlags().String("judgeModel", "", "model used to score assessments (defaults to --model)")
	rootCmd.PersistentFlags().String("ollamaUrl", "", "ollama endpoint for the ollama provider")
	rootCmd.PersistentFlags().Int("timeout", 0, "seconds to wait per model call (0 = default)")
	rootCmd.PersistentFlags().String("output", "", "path for the benchmark results JSON")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("judgeModel", rootCmd.PersistentFlags().Lookup("judgeModel"))
	_ = viper.BindPFlag("ollamaUrl", rootCmd.PersistentFlags().Lookup("ollamaUrl"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults. The config
// file is optional; a missing file leaves viper holding flag defaults.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
