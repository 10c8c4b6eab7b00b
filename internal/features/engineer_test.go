package features

import (
	"math"
	"testing"

	"github.com/mfarres/go-feb-stats/internal/model"
)

var testEngineer = Engineer{
	TargetMinutes:        36,
	FreeThrowFactor:      0.44,
	EfficiencyMultiplier: 100,
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

// makeGame builds a box line with 20 pts on 10 FGA (4/7 twos, 2/3 threes)
// and 4/5 FT.
func makeGame(seconds int) model.EnrichedGame {
	return model.EnrichedGame{
		GameRecord: model.GameRecord{
			PlayerID:   "p1",
			PlayerName: "Player One",
			TeamID:     "A",
			MatchID:    "m1",
			Seconds:    seconds,
			Pts:        20,
			FGA:        10,
			FGM:        6,
			ThreePA:    3,
			ThreePM:    2,
			TwoPA:      7,
			TwoPM:      4,
			FTA:        5,
			FTM:        4,
			ORB:        2,
			DRB:        4,
			TRB:        6,
			AST:        3,
			STL:        1,
			BLK:        0,
			TOV:        3,
			PF:         2,
		},
	}
}

func TestRateName(t *testing.T) {
	if got := testEngineer.RateName("pts"); got != "pts_per36" {
		t.Errorf("RateName: want pts_per36, got %s", got)
	}
	e := Engineer{TargetMinutes: 40}
	if got := e.RateName("ast"); got != "ast_per40" {
		t.Errorf("RateName: want ast_per40, got %s", got)
	}
}

func TestDerive_PerMinutesRates(t *testing.T) {
	// 18 minutes played: every rate doubles.
	row := testEngineer.Derive(makeGame(18 * 60))

	if !almostEqual(row.MinutesPlayed, 18) {
		t.Fatalf("MinutesPlayed: want 18, got %f", row.MinutesPlayed)
	}
	if got := row.Values["pts_per36"]; !almostEqual(got, 40) {
		t.Errorf("pts_per36: want 40, got %f", got)
	}
	if got := row.Values["trb_per36"]; !almostEqual(got, 12) {
		t.Errorf("trb_per36: want 12, got %f", got)
	}
	if got := row.Values["3pa_per36"]; !almostEqual(got, 6) {
		t.Errorf("3pa_per36: want 6, got %f", got)
	}
}

func TestDerive_ShootingPercentages(t *testing.T) {
	row := testEngineer.Derive(makeGame(30 * 60))

	if got := row.Values["fg2_pct"]; !almostEqual(got, 4.0/7.0) {
		t.Errorf("fg2_pct: want %f, got %f", 4.0/7.0, got)
	}
	if got := row.Values["fg3_pct"]; !almostEqual(got, 2.0/3.0) {
		t.Errorf("fg3_pct: want %f, got %f", 2.0/3.0, got)
	}
	if got := row.Values["ft_pct"]; !almostEqual(got, 0.8) {
		t.Errorf("ft_pct: want 0.8, got %f", got)
	}
	if got := row.Values["usage_2p"]; !almostEqual(got, 0.7) {
		t.Errorf("usage_2p: want 0.7, got %f", got)
	}
	if got := row.Values["usage_3p"]; !almostEqual(got, 0.3) {
		t.Errorf("usage_3p: want 0.3, got %f", got)
	}
}

func TestDerive_ZeroDenominatorsResolveToZero(t *testing.T) {
	g := makeGame(20 * 60)
	g.TwoPA, g.TwoPM = 0, 0
	g.ThreePA, g.ThreePM = 0, 0
	g.FTA, g.FTM = 0, 0
	g.FGA, g.FGM = 0, 0
	g.Pts = 0
	g.ORB, g.TOV = 0, 0

	row := testEngineer.Derive(g)
	for _, f := range []string{"fg2_pct", "fg3_pct", "ft_pct", "usage_2p", "usage_3p", "oer", "true_shooting_pct"} {
		if got := row.Values[f]; got != 0 {
			t.Errorf("%s with zero denominator: want 0, got %f", f, got)
		}
	}
}

func TestDerive_Possessions(t *testing.T) {
	// 10 + 0.44*5 - 2 + 3 = 13.2
	row := testEngineer.Derive(makeGame(30 * 60))
	if got := row.Values["possessions"]; !almostEqual(got, 13.2) {
		t.Errorf("possessions: want 13.2, got %f", got)
	}
	// oer = 100 * 20 / 13.2
	if got := row.Values["oer"]; !almostEqual(got, 100*20/13.2) {
		t.Errorf("oer: want %f, got %f", 100*20/13.2, got)
	}
}

func TestDerive_TrueShooting(t *testing.T) {
	// 20 / (2*(10 + 0.44*5)) = 20/24.4
	row := testEngineer.Derive(makeGame(30 * 60))
	if got := row.Values["true_shooting_pct"]; !almostEqual(got, 20/24.4) {
		t.Errorf("true_shooting_pct: want %f, got %f", 20/24.4, got)
	}
}

func TestDerive_DefensiveEfficiency(t *testing.T) {
	g := makeGame(30 * 60)
	g.Opp = &model.OpponentLink{OpponentPossessions: 80, OpponentPts: 72}
	row := testEngineer.Derive(g)
	if got := row.Values["der"]; !almostEqual(got, 90) {
		t.Errorf("der: want 90, got %f", got)
	}
}

func TestDerive_NoOpponentNoDer(t *testing.T) {
	row := testEngineer.Derive(makeGame(30 * 60))
	if _, ok := row.Values["der"]; ok {
		t.Error("der must be absent when no opponent link is attached")
	}
}

func TestDerive_ZoneSplits(t *testing.T) {
	g := makeGame(30 * 60)
	g.Zones.PC = model.ZoneShots{Made: 2, Attempted: 3}
	g.Zones.MBL = model.ZoneShots{Made: 1, Attempted: 2}
	g.Zones.C3L = model.ZoneShots{Made: 2, Attempted: 4}
	g.Zones.E3R = model.ZoneShots{Made: 0, Attempted: 1}

	row := testEngineer.Derive(g)
	if got := row.Values["interior_pct"]; !almostEqual(got, 3.0/5.0) {
		t.Errorf("interior_pct: want 0.6, got %f", got)
	}
	if got := row.Values["interior_freq"]; !almostEqual(got, 0.5) {
		t.Errorf("interior_freq: want 0.5, got %f", got)
	}
	if got := row.Values["exterior_pct"]; !almostEqual(got, 0.4) {
		t.Errorf("exterior_pct: want 0.4, got %f", got)
	}
	if got := row.Values["exterior_freq"]; !almostEqual(got, 0.5) {
		t.Errorf("exterior_freq: want 0.5, got %f", got)
	}
}

func TestClusteringFeatures_DerConditional(t *testing.T) {
	with := testEngineer.ClusteringFeatures(true)
	without := testEngineer.ClusteringFeatures(false)

	if len(with) != len(without)+1 {
		t.Fatalf("expected exactly one extra feature with opponent data: %d vs %d", len(with), len(without))
	}
	hasDer := func(feats []string) bool {
		for _, f := range feats {
			if f == "der" {
				return true
			}
		}
		return false
	}
	if !hasDer(with) {
		t.Error("expected der in the feature set with opponent data")
	}
	if hasDer(without) {
		t.Error("der must not appear without opponent data")
	}
}

func TestPercentageFeatures_ExcludesTrueShooting(t *testing.T) {
	for _, f := range testEngineer.PercentageFeatures() {
		if f == "true_shooting_pct" {
			t.Error("true_shooting_pct legitimately exceeds 1 and must not be clipped")
		}
	}
}
