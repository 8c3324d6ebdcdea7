package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timeoff-portal/internal/config"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	appName    = "timeoff-portal"
	appVersion = "v1.0.0"
)

var rootCmd = &cobra.Command{
	Use:           "timeoff",
	Short:         "Time-off portal backend",
	Long:          `Serves the time-off request, approval and administration API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(os.Stdout, logger.Options{
		Env:     cfg.App.Env,
		Level:   cfg.SlogLevel(),
		App:     appName,
		Version: appVersion,
	})
	slog.SetDefault(log)
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
