package cleaner

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/mfarres/go-feb-stats/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestValidateColumns(t *testing.T) {
	header := []string{"player_id", "pts", "fga"}

	if err := ValidateColumns("player_games", header, []string{"player_id", "pts"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateColumns("player_games", header, []string{"player_id", "minutes", "trb"})
	if err == nil {
		t.Fatal("expected an error for missing columns")
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if schemaErr.Table != "player_games" {
		t.Errorf("Table: want player_games, got %s", schemaErr.Table)
	}
	if len(schemaErr.Missing) != 2 {
		t.Fatalf("Missing: want 2 columns, got %v", schemaErr.Missing)
	}
	if !strings.Contains(err.Error(), "minutes") || !strings.Contains(err.Error(), "trb") {
		t.Errorf("error message should name the missing columns, got %q", err.Error())
	}
}

func TestClipPercentages(t *testing.T) {
	f := model.Frame{
		Columns: []string{"fg2_pct", "oer"},
		Rows: [][]float64{
			{1.2, 150},
			{-0.1, 90},
			{0.5, 110},
			{math.NaN(), 100},
		},
	}
	clipped := ClipPercentages(discardLogger(), &f, []string{"fg2_pct", "nonexistent"})

	if clipped != 2 {
		t.Errorf("clipped count: want 2, got %d", clipped)
	}
	if f.Rows[0][0] != 1 {
		t.Errorf("1.2 should clip to 1, got %f", f.Rows[0][0])
	}
	if f.Rows[1][0] != 0 {
		t.Errorf("-0.1 should clip to 0, got %f", f.Rows[1][0])
	}
	if f.Rows[2][0] != 0.5 {
		t.Errorf("in-range value must be untouched, got %f", f.Rows[2][0])
	}
	if !math.IsNaN(f.Rows[3][0]) {
		t.Errorf("NaN must pass through unclipped, got %f", f.Rows[3][0])
	}
	// Non-percentage column untouched.
	if f.Rows[0][1] != 150 {
		t.Errorf("oer must not be clipped, got %f", f.Rows[0][1])
	}
}

func TestFilterByMinutes(t *testing.T) {
	recs := []model.GameRecord{
		{PlayerID: "p1", Seconds: 0},
		{PlayerID: "p2", Seconds: 300},  // 5 min
		{PlayerID: "p3", Seconds: 600},  // 10 min
		{PlayerID: "p4", Seconds: 1200}, // 20 min
	}

	out := FilterByMinutes(discardLogger(), recs, 0)
	if len(out) != 3 {
		t.Errorf("threshold 0: want 3 rows, got %d", len(out))
	}

	// Exactly at the threshold is dropped.
	out = FilterByMinutes(discardLogger(), recs, 10)
	if len(out) != 1 || out[0].PlayerID != "p4" {
		t.Errorf("threshold 10: want only p4, got %d rows", len(out))
	}
}

func TestFilterByGamesPlayed(t *testing.T) {
	recs := []model.GameRecord{
		{PlayerID: "p1", MatchID: "m1"},
		{PlayerID: "p1", MatchID: "m2"},
		{PlayerID: "p1", MatchID: "m3"},
		{PlayerID: "p2", MatchID: "m1"},
	}

	out := FilterByGamesPlayed(discardLogger(), recs, 3)
	if len(out) != 3 {
		t.Fatalf("min 3 games: want 3 rows, got %d", len(out))
	}
	for _, r := range out {
		if r.PlayerID != "p1" {
			t.Errorf("only p1 has 3 games, got row for %s", r.PlayerID)
		}
	}

	// Threshold above everyone removes all rows.
	out = FilterByGamesPlayed(discardLogger(), recs, 5)
	if len(out) != 0 {
		t.Errorf("min 5 games: want 0 rows, got %d", len(out))
	}

	// Threshold <= 1 is a no-op.
	out = FilterByGamesPlayed(discardLogger(), recs, 1)
	if len(out) != 4 {
		t.Errorf("min 1 game: want all 4 rows, got %d", len(out))
	}
}

func TestHandleMissing_Drop(t *testing.T) {
	f := model.Frame{
		Columns: []string{"a", "b"},
		Rows: [][]float64{
			{1, 2},
			{math.NaN(), 3},
			{4, 5},
		},
	}
	out, err := HandleMissing(discardLogger(), f, StrategyDrop, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 2 {
		t.Errorf("drop: want 2 rows, got %d", len(out.Rows))
	}
	// Input frame untouched.
	if !math.IsNaN(f.Rows[1][0]) {
		t.Error("input frame must not be mutated")
	}
}

func TestHandleMissing_Fill(t *testing.T) {
	f := model.Frame{
		Columns: []string{"a"},
		Rows:    [][]float64{{math.NaN()}, {7}},
	}
	out, err := HandleMissing(discardLogger(), f, StrategyFill, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rows[0][0] != -1 {
		t.Errorf("fill: want -1, got %f", out.Rows[0][0])
	}
	if out.Rows[1][0] != 7 {
		t.Errorf("fill: non-NaN value must be untouched, got %f", out.Rows[1][0])
	}
}

func TestHandleMissing_UnknownStrategy(t *testing.T) {
	_, err := HandleMissing(discardLogger(), model.Frame{}, "interpolate", 0)
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("expected ErrInvalidStrategy, got %v", err)
	}
}
