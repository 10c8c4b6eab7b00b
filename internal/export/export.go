// Package export writes the pipeline's output artifacts: the scaled
// feature table, the raw (clean) feature table, and the full aggregated
// table. CSV is the default on-disk format; XLSX is available for
// spreadsheet consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mfarres/go-feb-stats/internal/config"
	"github.com/mfarres/go-feb-stats/internal/pipeline"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// WriteAll writes the three output tables of a run into dir and returns
// the written paths. Nothing is written when any table fails: the run
// either completes or leaves no partial artifact set behind.
func WriteAll(dir, format string, res *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	scaledHeader, scaledRows := scaledTable(res)
	rawHeader, rawRows := rawTable(res)
	aggHeader, aggRows := aggregatedTable(res)

	tables := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{config.ScaledFileName, scaledHeader, scaledRows},
		{config.RawFileName, rawHeader, rawRows},
		{config.AggregatedFileName, aggHeader, aggRows},
	}

	var paths []string
	for _, t := range tables {
		path := filepath.Join(dir, t.name+"."+format)
		var err error
		switch format {
		case FormatCSV:
			err = writeCSV(path, t.header, t.rows)
		case FormatXLSX:
			err = writeXLSX(path, t.header, t.rows)
		default:
			err = fmt.Errorf("unknown output format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", t.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// scaledTable carries player identity next to the scaled clustering
// features, one row per qualifying player.
func scaledTable(res *pipeline.Result) ([]string, [][]any) {
	header := append([]string{"player_id", "player_name"}, res.Scaled.Columns...)
	rows := make([][]any, len(res.Scaled.Rows))
	for i, r := range res.Scaled.Rows {
		row := make([]any, 0, len(header))
		row = append(row, res.Players[i].PlayerID, res.Players[i].PlayerName)
		for _, v := range r {
			row = append(row, v)
		}
		rows[i] = row
	}
	return header, rows
}

// rawTable is the clean clustering matrix before scaling, columns verbatim.
func rawTable(res *pipeline.Result) ([]string, [][]any) {
	header := append([]string(nil), res.Clean.Columns...)
	rows := make([][]any, len(res.Clean.Rows))
	for i, r := range res.Clean.Rows {
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = v
		}
		rows[i] = row
	}
	return header, rows
}

// aggregatedTable is the full unscaled aggregate: clustering plus EDA-only
// features, with games and total minutes.
func aggregatedTable(res *pipeline.Result) ([]string, [][]any) {
	header := append([]string{"player_id", "player_name", "num_games", "minutes_played"}, res.AllFeatures...)
	rows := make([][]any, len(res.Aggregates))
	for i, a := range res.Aggregates {
		row := make([]any, 0, len(header))
		row = append(row, a.PlayerID, a.PlayerName, a.Games, a.MinutesPlayed)
		for _, f := range res.AllFeatures {
			row = append(row, a.Values[f])
		}
		rows[i] = row
	}
	return header, rows
}

func writeCSV(path string, header []string, rows [][]any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return nil
}

func writeXLSX(path string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for j, name := range header {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
