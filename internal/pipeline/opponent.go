package pipeline

import (
	"log/slog"

	"github.com/mfarres/go-feb-stats/internal/model"
)

// TeamPossessions estimates the number of possessions a team used in one
// game: fga + factor·fta − orb + tov. The factor is conventionally 0.44.
func TeamPossessions(t model.TeamGameRecord, factor float64) float64 {
	return float64(t.FGA) + factor*float64(t.FTA) - float64(t.ORB) + float64(t.TOV)
}

type linkKey struct {
	matchID string
	teamID  string
}

// OpponentIndex holds the resolved (match, team) → opponent links of one
// season extract.
type OpponentIndex struct {
	links     map[linkKey]model.OpponentLink
	malformed int
}

// ResolveOpponents pairs the two competing teams of every match and builds
// a link from each team to the other's possessions and points. Matches
// with any other number of team rows are malformed data: no link is
// emitted and the condition is counted and logged, never fatal.
func ResolveOpponents(log *slog.Logger, teams []model.TeamGameRecord, factor float64) *OpponentIndex {
	byMatch := make(map[string][]model.TeamGameRecord, len(teams)/2+1)
	for _, t := range teams {
		byMatch[t.MatchID] = append(byMatch[t.MatchID], t)
	}

	ix := &OpponentIndex{links: make(map[linkKey]model.OpponentLink, len(teams))}
	for matchID, pair := range byMatch {
		if len(pair) != 2 {
			ix.malformed++
			log.Warn("match without a unique team pair, no opponent link",
				"match_id", matchID, "team_rows", len(pair))
			continue
		}
		for i, team := range pair {
			opp := pair[1-i]
			ix.links[linkKey{matchID, team.TeamID}] = model.OpponentLink{
				OpponentPossessions: TeamPossessions(opp, factor),
				OpponentPts:         float64(opp.Pts),
			}
		}
	}
	if ix.malformed > 0 {
		log.Warn("opponent resolution skipped malformed matches", "matches", ix.malformed)
	}
	return ix
}

// Lookup returns the link for a (match, team) pair, or nil.
func (ix *OpponentIndex) Lookup(matchID, teamID string) *model.OpponentLink {
	if link, ok := ix.links[linkKey{matchID, teamID}]; ok {
		return &link
	}
	return nil
}

// Len returns the number of resolved links.
func (ix *OpponentIndex) Len() int { return len(ix.links) }

// Malformed returns the number of matches skipped for not having exactly
// two team rows.
func (ix *OpponentIndex) Malformed() int { return ix.malformed }

// AttachOpponents joins the index onto player game rows by
// (match_id, team_id). Unmatched rows keep a nil link; their DER stays
// unset rather than fabricated.
func AttachOpponents(recs []model.GameRecord, ix *OpponentIndex) []model.EnrichedGame {
	out := make([]model.EnrichedGame, len(recs))
	for i, r := range recs {
		out[i] = model.EnrichedGame{
			GameRecord: r,
			Opp:        ix.Lookup(r.MatchID, r.TeamID),
		}
	}
	return out
}
