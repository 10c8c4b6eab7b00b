package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfarres/go-feb-stats/internal/storage"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List the seasons and competitions stored in the snapshot",
	Args:  cobra.NoArgs,
	RunE:  runSeasons,
}

func runSeasons(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	seasons, err := db.Seasons()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	comps, err := db.Competitions()
	if err != nil {
		return fmt.Errorf("list competitions: %w", err)
	}

	if len(seasons) == 0 {
		fmt.Fprintln(os.Stdout, "No data stored yet. Run 'febstats import --players <csv> --teams <csv>' to add some.")
		return nil
	}

	fmt.Fprintln(os.Stdout, "Seasons:")
	for _, s := range seasons {
		fmt.Fprintf(os.Stdout, "  %s\n", s)
	}
	fmt.Fprintln(os.Stdout, "Competitions:")
	for _, c := range comps {
		fmt.Fprintf(os.Stdout, "  %s\n", c)
	}
	return nil
}
