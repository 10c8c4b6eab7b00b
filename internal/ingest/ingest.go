// Package ingest reads the federation CSV exports into snapshot records.
// It is the schema boundary: required columns are validated here, before
// anything is computed or stored.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mfarres/go-feb-stats/internal/cleaner"
	"github.com/mfarres/go-feb-stats/internal/model"
)

// RequiredPlayerColumns are the columns a player-game CSV must carry.
// Shot-chart zone columns (rc_<zone>_m / rc_<zone>_a) are optional and
// default to zero when absent.
var RequiredPlayerColumns = []string{
	"player_id", "player_name", "team_id", "match_id", "season", "competition",
	"minutes", "pts", "fga", "fgm", "3pa", "3pm", "2pa", "2pm", "fta", "ftm",
	"orb", "drb", "trb", "ast", "stl", "blk", "tov", "pf",
}

// RequiredTeamColumns are the columns a team-game CSV must carry.
var RequiredTeamColumns = []string{
	"team_id", "match_id", "season", "competition",
	"pts", "fga", "fta", "orb", "tov",
}

// zoneNames in chart order; the CSV columns are rc_<name>_m and rc_<name>_a.
var zoneNames = []string{"pc", "pl", "pr", "mbl", "mbr", "mel", "mer", "c3l", "c3r", "ce3l", "ce3r", "e3l", "e3r"}

func zoneFields(z *model.ZoneChart) map[string]*model.ZoneShots {
	return map[string]*model.ZoneShots{
		"pc": &z.PC, "pl": &z.PL, "pr": &z.PR, "mbl": &z.MBL, "mbr": &z.MBR,
		"mel": &z.MEL, "mer": &z.MER, "c3l": &z.C3L, "c3r": &z.C3R,
		"ce3l": &z.CE3L, "ce3r": &z.CE3R, "e3l": &z.E3L, "e3r": &z.E3R,
	}
}

// ReadPlayerGames parses a player-game CSV. Fails with a *cleaner.SchemaError
// when required columns are missing.
func ReadPlayerGames(r io.Reader) ([]model.GameRecord, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := cleaner.ValidateColumns("player_games", header, RequiredPlayerColumns); err != nil {
		return nil, err
	}
	idx := columnIndex(header)

	recs := make([]model.GameRecord, 0, len(rows))
	for n, row := range rows {
		rec := model.GameRecord{
			PlayerID:    row[idx["player_id"]],
			PlayerName:  row[idx["player_name"]],
			TeamID:      row[idx["team_id"]],
			MatchID:     row[idx["match_id"]],
			Season:      row[idx["season"]],
			Competition: row[idx["competition"]],
		}

		ints := map[string]*int{
			"minutes": &rec.Seconds,
			"pts":     &rec.Pts,
			"fga":     &rec.FGA,
			"fgm":     &rec.FGM,
			"3pa":     &rec.ThreePA,
			"3pm":     &rec.ThreePM,
			"2pa":     &rec.TwoPA,
			"2pm":     &rec.TwoPM,
			"fta":     &rec.FTA,
			"ftm":     &rec.FTM,
			"orb":     &rec.ORB,
			"drb":     &rec.DRB,
			"trb":     &rec.TRB,
			"ast":     &rec.AST,
			"stl":     &rec.STL,
			"blk":     &rec.BLK,
			"tov":     &rec.TOV,
			"pf":      &rec.PF,
		}
		for col, dst := range ints {
			v, err := parseInt(row[idx[col]])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", n+2, col, err)
			}
			*dst = v
		}

		zones := zoneFields(&rec.Zones)
		for _, name := range zoneNames {
			zs := zones[name]
			if i, ok := idx["rc_"+name+"_m"]; ok {
				if zs.Made, err = parseInt(row[i]); err != nil {
					return nil, fmt.Errorf("row %d, column rc_%s_m: %w", n+2, name, err)
				}
			}
			if i, ok := idx["rc_"+name+"_a"]; ok {
				if zs.Attempted, err = parseInt(row[i]); err != nil {
					return nil, fmt.Errorf("row %d, column rc_%s_a: %w", n+2, name, err)
				}
			}
		}

		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadTeamGames parses a team-game CSV. Fails with a *cleaner.SchemaError
// when required columns are missing.
func ReadTeamGames(r io.Reader) ([]model.TeamGameRecord, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := cleaner.ValidateColumns("team_games", header, RequiredTeamColumns); err != nil {
		return nil, err
	}
	idx := columnIndex(header)

	recs := make([]model.TeamGameRecord, 0, len(rows))
	for n, row := range rows {
		rec := model.TeamGameRecord{
			TeamID:      row[idx["team_id"]],
			MatchID:     row[idx["match_id"]],
			Season:      row[idx["season"]],
			Competition: row[idx["competition"]],
		}
		ints := map[string]*int{
			"pts": &rec.Pts, "fga": &rec.FGA, "fta": &rec.FTA, "orb": &rec.ORB, "tov": &rec.TOV,
		}
		for col, dst := range ints {
			v, err := parseInt(row[idx[col]])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", n+2, col, err)
			}
			*dst = v
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func readAll(r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("read csv: empty file")
	}
	return all[0], all[1:], nil
}

// columnIndex maps column names to positions. idx is usable with both the
// two-value lookup (optional columns) and direct indexing (validated ones).
type colIndex map[string]int

func columnIndex(header []string) colIndex {
	idx := make(colIndex, len(header))
	for i, c := range header {
		idx[strings.TrimSpace(c)] = i
	}
	return idx
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
