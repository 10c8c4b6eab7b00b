// Package cleaner holds the validation and filtering steps that run between
// extraction and feature engineering. Every operation is pure: it takes an
// input table and returns a new one, with logging as the only side effect.
package cleaner

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mfarres/go-feb-stats/internal/model"
)

// SchemaError reports required columns missing from an input table. It is
// fatal: the run aborts before any computation.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// ErrInvalidStrategy is returned by HandleMissing for unrecognized
// strategy names.
var ErrInvalidStrategy = errors.New("invalid missing-value strategy")

// ValidateColumns checks that every required column is present in header.
// Returns a *SchemaError naming the missing columns when any are absent.
func ValidateColumns(table string, header, required []string) error {
	present := make(map[string]struct{}, len(header))
	for _, c := range header {
		present[c] = struct{}{}
	}
	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: table, Missing: missing}
	}
	return nil
}

// ClipPercentages clips the named frame columns into [0,1] in place and
// returns the number of clipped values. Out-of-range values are a data
// quality condition, never an error.
func ClipPercentages(log *slog.Logger, f *model.Frame, pctColumns []string) int {
	clipped := 0
	for _, name := range pctColumns {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for _, row := range f.Rows {
			v := row[idx]
			if math.IsNaN(v) {
				continue
			}
			if v < 0 {
				row[idx] = 0
				clipped++
			} else if v > 1 {
				row[idx] = 1
				clipped++
			}
		}
	}
	if clipped > 0 {
		log.Warn("clipped out-of-range percentage values", "count", clipped)
	}
	return clipped
}

// FilterByMinutes drops game rows whose playing time is at or below the
// threshold (in minutes). With the default threshold of 0 it removes rows
// with non-positive playing time.
func FilterByMinutes(log *slog.Logger, recs []model.GameRecord, minMinutes float64) []model.GameRecord {
	out := recs[:0:0]
	for _, r := range recs {
		if r.MinutesPlayed() > minMinutes {
			out = append(out, r)
		}
	}
	if removed := len(recs) - len(out); removed > 0 {
		log.Info("filtered rows by minutes", "removed", removed, "min_minutes", minMinutes)
	}
	return out
}

// FilterByGamesPlayed keeps only rows of players with at least minGames
// game rows. This runs on the pre-aggregation table, so it decides both
// which games contribute and which players appear at all.
func FilterByGamesPlayed(log *slog.Logger, recs []model.GameRecord, minGames int) []model.GameRecord {
	if minGames <= 1 {
		return recs
	}
	counts := make(map[string]int, len(recs))
	for _, r := range recs {
		counts[r.PlayerID]++
	}
	out := recs[:0:0]
	for _, r := range recs {
		if counts[r.PlayerID] >= minGames {
			out = append(out, r)
		}
	}
	kept := make(map[string]struct{}, len(out))
	for _, r := range out {
		kept[r.PlayerID] = struct{}{}
	}
	log.Info("filtered players by games played",
		"players_before", len(counts), "players_after", len(kept), "min_games", minGames)
	return out
}

// Missing-value strategies recognized by HandleMissing.
const (
	StrategyDrop = "drop"
	StrategyFill = "fill"
)

// HandleMissing removes or fills NaN values in the frame. StrategyDrop
// drops any row containing a NaN; StrategyFill replaces NaNs with
// fillValue. Unknown strategies fail with ErrInvalidStrategy.
func HandleMissing(log *slog.Logger, f model.Frame, strategy string, fillValue float64) (model.Frame, error) {
	switch strategy {
	case StrategyDrop:
		out := model.NewFrame(f.Columns, len(f.Rows))
		dropped := 0
		for _, row := range f.Rows {
			hasNaN := false
			for _, v := range row {
				if math.IsNaN(v) {
					hasNaN = true
					break
				}
			}
			if hasNaN {
				dropped++
				continue
			}
			out.Rows = append(out.Rows, append([]float64(nil), row...))
		}
		if dropped > 0 {
			log.Info("dropped rows with missing values", "rows", dropped)
		}
		return out, nil

	case StrategyFill:
		out := f.Clone()
		filled := 0
		for _, row := range out.Rows {
			for i, v := range row {
				if math.IsNaN(v) {
					row[i] = fillValue
					filled++
				}
			}
		}
		if filled > 0 {
			log.Info("filled missing values", "values", filled, "fill", fillValue)
		}
		return out, nil

	default:
		return model.Frame{}, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}
