package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfarres/go-feb-stats/internal/export"
	"github.com/mfarres/go-feb-stats/internal/pipeline"
	"github.com/mfarres/go-feb-stats/internal/storage"
)

var (
	runSeason      string
	runCompetition string
	runOutDir      string
	runFormat      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the feature pipeline and write the output tables",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runSeason, "season", "", "season to process (overrides config)")
	runCmd.Flags().StringVar(&runCompetition, "competition", "", "competition to process (overrides config)")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "output directory (overrides config)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: csv or xlsx (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runSeason != "" {
		cfg.Season = runSeason
	}
	if runCompetition != "" {
		cfg.Competition = runCompetition
	}
	if runOutDir != "" {
		cfg.OutputDir = runOutDir
	}
	if runFormat != "" {
		cfg.OutputFormat = runFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	res, err := pipeline.New(cfg, db, log).Run()
	if err != nil {
		return err
	}

	paths, err := export.WriteAll(cfg.OutputDir, cfg.OutputFormat, res)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Run %s: %d players, %d features (%s %s)\n",
		res.RunID[:8], len(res.Players), len(res.ClusteringFeatures), res.Season, res.Competition)
	for _, p := range paths {
		fmt.Fprintf(os.Stdout, "  wrote %s\n", p)
	}
	return nil
}
