package model

import "sort"

// ---- Raw records loaded from the snapshot database ----

// ZoneShots holds the made/attempted counters for one shot-chart zone.
type ZoneShots struct {
	Made      int
	Attempted int
}

// ZoneChart holds the per-zone shot counters of one player in one game.
// The interior zones cover the paint (central, lateral, low blocks); the
// exterior zones cover mid-range and the three-point arc.
type ZoneChart struct {
	// Interior
	PC  ZoneShots // paint central
	PL  ZoneShots // paint left
	PR  ZoneShots // paint right
	MBL ZoneShots // low block left
	MBR ZoneShots // low block right

	// Exterior
	MEL  ZoneShots // mid-range left
	MER  ZoneShots // mid-range right
	C3L  ZoneShots // corner three left
	C3R  ZoneShots // corner three right
	CE3L ZoneShots // wing three left
	CE3R ZoneShots // wing three right
	E3L  ZoneShots // top three left
	E3R  ZoneShots // top three right
}

// Interior returns the summed made/attempted counters of the interior zones.
func (z ZoneChart) Interior() (made, attempted int) {
	for _, s := range [...]ZoneShots{z.PC, z.PL, z.PR, z.MBL, z.MBR} {
		made += s.Made
		attempted += s.Attempted
	}
	return made, attempted
}

// Exterior returns the summed made/attempted counters of the exterior zones.
func (z ZoneChart) Exterior() (made, attempted int) {
	for _, s := range [...]ZoneShots{z.MEL, z.MER, z.C3L, z.C3R, z.CE3L, z.CE3R, z.E3L, z.E3R} {
		made += s.Made
		attempted += s.Attempted
	}
	return made, attempted
}

// GameRecord is one player's box-score line for one game. Minutes are stored
// in seconds, as delivered by the federation feed, and converted before use.
type GameRecord struct {
	PlayerID    string
	PlayerName  string
	TeamID      string
	MatchID     string
	Season      string
	Competition string

	Seconds int

	Pts     int
	FGA     int
	FGM     int
	ThreePA int
	ThreePM int
	TwoPA   int
	TwoPM   int
	FTA     int
	FTM     int
	ORB     int
	DRB     int
	TRB     int
	AST     int
	STL     int
	BLK     int
	TOV     int
	PF      int

	Zones ZoneChart
}

// MinutesPlayed converts the stored seconds to minutes.
func (g *GameRecord) MinutesPlayed() float64 {
	return float64(g.Seconds) / 60.0
}

// TeamGameRecord is one team's totals for one game, used only to derive
// team possessions and opponent attribution.
type TeamGameRecord struct {
	TeamID      string
	MatchID     string
	Season      string
	Competition string

	Pts int
	FGA int
	FTA int
	ORB int
	TOV int
}

// OpponentLink attaches the opposing team's totals to a (match, team) pair.
// It exists only for matches with exactly two team records.
type OpponentLink struct {
	OpponentPossessions float64
	OpponentPts         float64
}

// EnrichedGame is a GameRecord with its opponent link, when one could be
// resolved. Opp stays nil for malformed matches; DER is then unavailable
// for this row, never fabricated.
type EnrichedGame struct {
	GameRecord
	Opp *OpponentLink
}

// ---- Aggregated outputs ----

// PlayerAggregate is one player's season-level feature vector: the
// minutes-weighted (or simple) mean of the per-game features, plus total
// minutes and game count.
type PlayerAggregate struct {
	PlayerID      string
	PlayerName    string
	Games         int
	MinutesPlayed float64

	// Values holds the aggregated features keyed by feature name.
	Values map[string]float64
}

// RawTotals is one player's summed raw counting stats across games. Used
// for reporting and sanity checks, not for the clustering feature set.
type RawTotals struct {
	PlayerID   string
	PlayerName string
	NumGames   int

	Pts, FGA, FGM          int
	ThreePA, ThreePM       int
	TwoPA, TwoPM, FTA, FTM int
	ORB, DRB, TRB          int
	AST, STL, BLK, TOV, PF int
	Seconds                int
}

// ---- Feature matrix ----

// Frame is a small column-ordered matrix of float features. Column order
// is significant and preserved verbatim by every transformation.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// NewFrame allocates an empty frame with the given columns and row capacity.
func NewFrame(columns []string, rows int) Frame {
	return Frame{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]float64, 0, rows),
	}
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := Frame{
		Columns: append([]string(nil), f.Columns...),
		Rows:    make([][]float64, len(f.Rows)),
	}
	for i, r := range f.Rows {
		out.Rows[i] = append([]float64(nil), r...)
	}
	return out
}

// ColumnIndex returns the index of the named column, or -1.
func (f Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SortAggregates orders aggregates by player id ascending, the canonical
// output order of the pipeline.
func SortAggregates(aggs []PlayerAggregate) {
	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].PlayerID < aggs[j].PlayerID
	})
}
