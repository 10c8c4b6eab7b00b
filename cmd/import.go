package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mfarres/go-feb-stats/internal/ingest"
	"github.com/mfarres/go-feb-stats/internal/storage"
)

var (
	importPlayersCSV string
	importTeamsCSV   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import box-score CSV exports into the snapshot database",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importPlayersCSV, "players", "", "player-game CSV file")
	importCmd.Flags().StringVar(&importTeamsCSV, "teams", "", "team-game CSV file")
}

func runImport(cmd *cobra.Command, args []string) error {
	if importPlayersCSV == "" && importTeamsCSV == "" {
		return fmt.Errorf("nothing to import: pass --players and/or --teams")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if importPlayersCSV != "" {
		f, err := os.Open(importPlayersCSV)
		if err != nil {
			return fmt.Errorf("open players csv: %w", err)
		}
		recs, err := ingest.ReadPlayerGames(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read players csv: %w", err)
		}
		if err := db.InsertPlayerGames(recs); err != nil {
			return fmt.Errorf("store player games: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Imported %d player-game rows from %s\n", len(recs), importPlayersCSV)
	}

	if importTeamsCSV != "" {
		f, err := os.Open(importTeamsCSV)
		if err != nil {
			return fmt.Errorf("open teams csv: %w", err)
		}
		recs, err := ingest.ReadTeamGames(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read teams csv: %w", err)
		}
		if err := db.InsertTeamGames(recs); err != nil {
			return fmt.Errorf("store team games: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Imported %d team-game rows from %s\n", len(recs), importTeamsCSV)
	}

	return nil
}
