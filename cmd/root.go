package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfarres/go-feb-stats/internal/config"
)

var (
	dbPath  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "febstats",
	Short: "FEB box-score feature pipeline",
	Long:  "Import FEB league box scores and build per-player normalized feature matrices for clustering.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite snapshot database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(seasonsCmd)
}

// loadConfig layers defaults, the optional YAML file, FEBSTATS_ environment
// variables and finally the --db flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
