package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mfarres/go-feb-stats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRunSummary prints a one-line header for a pipeline run.
func PrintRunSummary(w io.Writer, season, competition string, players, games int, hasOpponent bool) {
	der := "yes"
	if !hasOpponent {
		der = "no (opponent data unavailable)"
	}
	fmt.Fprintf(w, "\nSeason: %s  |  Competition: %s  |  Players: %d  |  Game rows: %d  |  DER: %s\n\n",
		season, competition, players, games, der)
}

// PrintAggregateTable prints the per-player aggregated feature table.
// If focusPlayerID is non-empty, that player's row is marked with ">".
func PrintAggregateTable(w io.Writer, aggs []model.PlayerAggregate, targetMinutes int, hasOpponent bool, focusPlayerID string) {
	table := newTable(w)

	per := func(stat string) string { return fmt.Sprintf("%s_per%d", stat, targetMinutes) }

	header := []any{
		" ", "PLAYER", "GP", "MIN",
		fmt.Sprintf("PTS/%d", targetMinutes),
		fmt.Sprintf("TRB/%d", targetMinutes),
		fmt.Sprintf("AST/%d", targetMinutes),
		"FG2%", "FG3%", "FT%", "TS%", "USG2", "USG3", "OER",
	}
	if hasOpponent {
		header = append(header, "DER")
	}
	table.Header(header...)

	for _, a := range aggs {
		marker := " "
		if focusPlayerID != "" && a.PlayerID == focusPlayerID {
			marker = ">"
		}
		row := []string{
			marker,
			a.PlayerName,
			strconv.Itoa(a.Games),
			fmt.Sprintf("%.1f", a.MinutesPlayed),
			fmt.Sprintf("%.1f", a.Values[per("pts")]),
			fmt.Sprintf("%.1f", a.Values[per("trb")]),
			fmt.Sprintf("%.1f", a.Values[per("ast")]),
			fmt.Sprintf("%.0f%%", a.Values["fg2_pct"]*100),
			fmt.Sprintf("%.0f%%", a.Values["fg3_pct"]*100),
			fmt.Sprintf("%.0f%%", a.Values["ft_pct"]*100),
			fmt.Sprintf("%.0f%%", a.Values["true_shooting_pct"]*100),
			fmt.Sprintf("%.2f", a.Values["usage_2p"]),
			fmt.Sprintf("%.2f", a.Values["usage_3p"]),
			fmt.Sprintf("%.1f", a.Values["oer"]),
		}
		if hasOpponent {
			row = append(row, fmt.Sprintf("%.1f", a.Values["der"]))
		}
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		table.Append(cells...)
	}
	table.Render()
}

// PrintTotalsTable prints the summed raw counting stats per player.
func PrintTotalsTable(w io.Writer, totals []model.RawTotals, focusPlayerID string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "GP", "MIN", "PTS", "FGM-A", "3PM-A", "FTM-A", "ORB", "DRB", "AST", "STL", "BLK", "TOV", "PF")

	for _, t := range totals {
		marker := " "
		if focusPlayerID != "" && t.PlayerID == focusPlayerID {
			marker = ">"
		}
		table.Append(
			marker,
			t.PlayerName,
			strconv.Itoa(t.NumGames),
			fmt.Sprintf("%.0f", float64(t.Seconds)/60),
			strconv.Itoa(t.Pts),
			fmt.Sprintf("%d-%d", t.FGM, t.FGA),
			fmt.Sprintf("%d-%d", t.ThreePM, t.ThreePA),
			fmt.Sprintf("%d-%d", t.FTM, t.FTA),
			strconv.Itoa(t.ORB),
			strconv.Itoa(t.DRB),
			strconv.Itoa(t.AST),
			strconv.Itoa(t.STL),
			strconv.Itoa(t.BLK),
			strconv.Itoa(t.TOV),
			strconv.Itoa(t.PF),
		)
	}
	table.Render()
}
