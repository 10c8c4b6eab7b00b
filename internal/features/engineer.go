// Package features derives the per-game feature vector from enriched box
// score rows: per-minutes rates, shooting and usage percentages, zone
// splits, and the possession-based efficiency metrics.
package features

import (
	"fmt"

	"github.com/mfarres/go-feb-stats/internal/model"
)

// rateStats are the counting stats normalized to the target-minutes base.
var rateStats = []string{
	"pts", "ast", "trb", "stl", "blk", "tov",
	"fga", "fgm", "3pa", "3pm", "2pa", "2pm", "fta", "ftm",
}

// Engineer derives per-game features. It is stateless; the fields are the
// coefficients shared across the whole run.
type Engineer struct {
	// TargetMinutes is the normalization base for per-minutes rates.
	TargetMinutes int
	// FreeThrowFactor is the FTA coefficient in the possession estimate
	// and true-shooting denominator.
	FreeThrowFactor float64
	// EfficiencyMultiplier scales OER/DER, conventionally 100.
	EfficiencyMultiplier float64
}

// Row is one game's derived feature vector for one player.
type Row struct {
	PlayerID      string
	PlayerName    string
	MinutesPlayed float64

	// Values holds every derived feature keyed by name.
	Values map[string]float64
}

// RateName returns the feature name of a per-minutes rate, e.g. "pts_per36".
func (e Engineer) RateName(stat string) string {
	return fmt.Sprintf("%s_per%d", stat, e.TargetMinutes)
}

// ClusteringFeatures returns the ordered clustering feature set. der is
// included only when the run resolved opponent data; callers pass the
// resolver's flag rather than probing rows.
//
// interior/exterior splits are excluded here: they correlate too strongly
// with fg2_pct/usage_2p and would double-count those axes.
func (e Engineer) ClusteringFeatures(hasOpponent bool) []string {
	feats := []string{
		e.RateName("pts"), e.RateName("ast"), e.RateName("trb"),
		e.RateName("stl"), e.RateName("blk"), e.RateName("tov"),
		e.RateName("fga"), e.RateName("3pa"), e.RateName("2pa"),
		"fg2_pct", "fg3_pct", "ft_pct",
		"usage_2p", "usage_3p",
		"oer",
	}
	if hasOpponent {
		feats = append(feats, "der")
	}
	return append(feats, "true_shooting_pct", "orb", "drb", "pf")
}

// EDAFeatures returns the zone-split features aggregated for analysis and
// visualization but kept out of the scaled clustering matrix.
func (e Engineer) EDAFeatures() []string {
	return []string{"interior_pct", "interior_freq", "exterior_pct", "exterior_freq"}
}

// PercentageFeatures returns the features bounded to [0,1] by definition,
// the set the cleaner clips. True shooting is not listed: it legitimately
// exceeds 1 on free-throw-heavy lines.
func (e Engineer) PercentageFeatures() []string {
	return []string{
		"fg2_pct", "fg3_pct", "ft_pct",
		"usage_2p", "usage_3p",
		"interior_pct", "interior_freq", "exterior_pct", "exterior_freq",
	}
}

// Derive computes the full per-game feature vector for one enriched row.
//
// Division policy: every percentage/efficiency feature resolves a zero
// denominator to 0 so NaN/Inf never enters the table from those formulas.
// The per-minutes rates divide plainly; rows with zero minutes are filtered
// upstream, and the scaler re-checks defensively anyway.
func (e Engineer) Derive(g model.EnrichedGame) Row {
	minutes := g.MinutesPlayed()

	v := make(map[string]float64, 32)
	for _, stat := range rateStats {
		v[e.RateName(stat)] = statValue(&g.GameRecord, stat) / minutes * float64(e.TargetMinutes)
	}

	v["fg2_pct"] = ratio(float64(g.TwoPM), float64(g.TwoPA))
	v["fg3_pct"] = ratio(float64(g.ThreePM), float64(g.ThreePA))
	v["ft_pct"] = ratio(float64(g.FTM), float64(g.FTA))

	v["usage_2p"] = ratio(float64(g.TwoPA), float64(g.FGA))
	v["usage_3p"] = ratio(float64(g.ThreePA), float64(g.FGA))

	intMade, intAtt := g.Zones.Interior()
	extMade, extAtt := g.Zones.Exterior()
	v["interior_pct"] = ratio(float64(intMade), float64(intAtt))
	v["interior_freq"] = ratio(float64(intAtt), float64(g.FGA))
	v["exterior_pct"] = ratio(float64(extMade), float64(extAtt))
	v["exterior_freq"] = ratio(float64(extAtt), float64(g.FGA))

	possessions := float64(g.FGA) + e.FreeThrowFactor*float64(g.FTA) - float64(g.ORB) + float64(g.TOV)
	v["possessions"] = possessions
	v["oer"] = e.EfficiencyMultiplier * ratio(float64(g.Pts), possessions)

	trueShootingAttempts := 2 * (float64(g.FGA) + e.FreeThrowFactor*float64(g.FTA))
	v["true_shooting_pct"] = ratio(float64(g.Pts), trueShootingAttempts)

	if g.Opp != nil {
		v["der"] = e.EfficiencyMultiplier * ratio(g.Opp.OpponentPts, g.Opp.OpponentPossessions)
	}

	// Raw per-game values that join the clustering set unnormalized.
	v["orb"] = float64(g.ORB)
	v["drb"] = float64(g.DRB)
	v["pf"] = float64(g.PF)

	return Row{
		PlayerID:      g.PlayerID,
		PlayerName:    g.PlayerName,
		MinutesPlayed: minutes,
		Values:        v,
	}
}

// DeriveAll derives feature rows for every enriched game, in input order.
func (e Engineer) DeriveAll(games []model.EnrichedGame) []Row {
	rows := make([]Row, len(games))
	for i, g := range games {
		rows[i] = e.Derive(g)
	}
	return rows
}

// ratio divides num by den, resolving non-positive denominators to 0.
func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

func statValue(g *model.GameRecord, name string) float64 {
	switch name {
	case "pts":
		return float64(g.Pts)
	case "ast":
		return float64(g.AST)
	case "trb":
		return float64(g.TRB)
	case "stl":
		return float64(g.STL)
	case "blk":
		return float64(g.BLK)
	case "tov":
		return float64(g.TOV)
	case "fga":
		return float64(g.FGA)
	case "fgm":
		return float64(g.FGM)
	case "3pa":
		return float64(g.ThreePA)
	case "3pm":
		return float64(g.ThreePM)
	case "2pa":
		return float64(g.TwoPA)
	case "2pm":
		return float64(g.TwoPM)
	case "fta":
		return float64(g.FTA)
	case "ftm":
		return float64(g.FTM)
	}
	return 0
}
