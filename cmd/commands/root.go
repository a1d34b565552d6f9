package commands

// Root command for Cobra CLI
// Loads configuration and initializes logging before any subcommand runs
// Registers all subcommands (render, preview, serve, watch, publish)

import (
	"fmt"

	"temperature-heatmap/internal/infra/config"
	logging "temperature-heatmap/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	envFile    string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Temperature Heatmap - monthly global land-surface temperature charts",
	Long: `Temperature Heatmap fetches the monthly global land-surface temperature dataset
and draws it as a year by month heatmap: SVG, interactive HTML, PNG, ECharts and
a terminal preview, served over HTTP or posted to Telegram on a schedule.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(config.Options{
			ConfigPath: configPath,
			EnvFile:    envFile,
			Flags:      cmd.Flags(),
		})
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if err := logging.Init(cfg.Log.Dir); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.LogDebug("Config loaded",
			zap.String("command", cmd.Name()),
			zap.String("dataset", cfg.Dataset.URL),
			zap.Strings("formats", cfg.Output.Formats))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to .env file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(publishCmd)
}
