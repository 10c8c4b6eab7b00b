// Package aggregate collapses per-game feature rows into one row per
// player. The weighted mode weights each game by its minutes played, which
// is only correct for rate/percentage features computed per game; raw
// counting totals go through RawTotals instead.
package aggregate

import (
	"sort"

	"github.com/mfarres/go-feb-stats/internal/features"
	"github.com/mfarres/go-feb-stats/internal/model"
)

// accum is the per-player accumulator of the aggregation fold.
type accum struct {
	playerID   string
	playerName string
	games      int
	minutes    float64
	weighted   map[string]float64 // Σ(f·m) per feature
	sums       map[string]float64 // Σf per feature
}

// Weighted aggregates feature rows per player using the minutes-weighted
// mean: aggregate = Σ(f_i·m_i) / Σ(m_i). The aggregate's minutes_played is
// Σ(m_i). Output is sorted by player id.
//
// A player whose total minutes are zero degenerates to the simple mean;
// that cannot happen after the minutes filter, but the fold guards the
// division regardless.
func Weighted(rows []features.Row, feats []string) []model.PlayerAggregate {
	arena := fold(rows, feats)

	aggs := make([]model.PlayerAggregate, 0, len(arena))
	for _, acc := range arena {
		values := make(map[string]float64, len(feats))
		for _, f := range feats {
			if acc.minutes > 0 {
				values[f] = acc.weighted[f] / acc.minutes
			} else {
				values[f] = acc.sums[f] / float64(acc.games)
			}
		}
		aggs = append(aggs, model.PlayerAggregate{
			PlayerID:      acc.playerID,
			PlayerName:    acc.playerName,
			Games:         acc.games,
			MinutesPlayed: acc.minutes,
			Values:        values,
		})
	}
	model.SortAggregates(aggs)
	return aggs
}

// Simple aggregates feature rows per player using the unweighted arithmetic
// mean. Used when per-game minutes are unavailable or weighting is
// explicitly disabled. Output is sorted by player id.
func Simple(rows []features.Row, feats []string) []model.PlayerAggregate {
	arena := fold(rows, feats)

	aggs := make([]model.PlayerAggregate, 0, len(arena))
	for _, acc := range arena {
		values := make(map[string]float64, len(feats))
		for _, f := range feats {
			values[f] = acc.sums[f] / float64(acc.games)
		}
		aggs = append(aggs, model.PlayerAggregate{
			PlayerID:      acc.playerID,
			PlayerName:    acc.playerName,
			Games:         acc.games,
			MinutesPlayed: acc.minutes,
			Values:        values,
		})
	}
	model.SortAggregates(aggs)
	return aggs
}

// fold runs one pass over the rows, accumulating both the weighted and the
// plain sums per player so either mode can finish from the same arena.
func fold(rows []features.Row, feats []string) []*accum {
	index := make(map[string]*accum, 64)
	var order []*accum

	for _, r := range rows {
		acc := index[r.PlayerID]
		if acc == nil {
			acc = &accum{
				playerID:   r.PlayerID,
				playerName: r.PlayerName,
				weighted:   make(map[string]float64, len(feats)),
				sums:       make(map[string]float64, len(feats)),
			}
			index[r.PlayerID] = acc
			order = append(order, acc)
		}
		acc.games++
		acc.minutes += r.MinutesPlayed
		for _, f := range feats {
			v, ok := r.Values[f]
			if !ok {
				continue
			}
			acc.weighted[f] += v * r.MinutesPlayed
			acc.sums[f] += v
		}
	}
	return order
}

// RawTotals sums the raw counting statistics per player and records the
// group size as NumGames. Output is sorted by player id.
func RawTotals(recs []model.GameRecord) []model.RawTotals {
	index := make(map[string]*model.RawTotals, 64)
	var order []*model.RawTotals

	for i := range recs {
		r := &recs[i]
		t := index[r.PlayerID]
		if t == nil {
			t = &model.RawTotals{PlayerID: r.PlayerID, PlayerName: r.PlayerName}
			index[r.PlayerID] = t
			order = append(order, t)
		}
		t.NumGames++
		t.Seconds += r.Seconds
		t.Pts += r.Pts
		t.FGA += r.FGA
		t.FGM += r.FGM
		t.ThreePA += r.ThreePA
		t.ThreePM += r.ThreePM
		t.TwoPA += r.TwoPA
		t.TwoPM += r.TwoPM
		t.FTA += r.FTA
		t.FTM += r.FTM
		t.ORB += r.ORB
		t.DRB += r.DRB
		t.TRB += r.TRB
		t.AST += r.AST
		t.STL += r.STL
		t.BLK += r.BLK
		t.TOV += r.TOV
		t.PF += r.PF
	}

	out := make([]model.RawTotals, len(order))
	for i, t := range order {
		out[i] = *t
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}
