package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfarres/go-feb-stats/internal/pipeline"
	"github.com/mfarres/go-feb-stats/internal/report"
	"github.com/mfarres/go-feb-stats/internal/storage"
)

var (
	showSeason      string
	showCompetition string
	showPlayerID    string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Run the pipeline and print the aggregated player tables",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showSeason, "season", "", "season to process (overrides config)")
	showCmd.Flags().StringVar(&showCompetition, "competition", "", "competition to process (overrides config)")
	showCmd.Flags().StringVar(&showPlayerID, "player", "", "highlight this player id")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if showSeason != "" {
		cfg.Season = showSeason
	}
	if showCompetition != "" {
		cfg.Competition = showCompetition
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

	games := 0
	for _, a := range res.Aggregates {
		games += a.Games
	}
	report.PrintRunSummary(os.Stdout, res.Season, res.Competition, len(res.Players), games, res.HasOpponent)
	report.PrintAggregateTable(os.Stdout, res.Aggregates, cfg.TargetMinutes, res.HasOpponent, showPlayerID)
	report.PrintTotalsTable(os.Stdout, res.RawTotals, showPlayerID)
	return nil
}
