package storage

import (
	"fmt"

	"github.com/mfarres/go-feb-stats/internal/model"
)

// playerGameColumns is the column list shared by the insert and select
// statements for player_games; order must match scanPlayerGame.
const playerGameColumns = `
	player_id, player_name, team_id, match_id, season, competition,
	minutes, pts, fga, fgm, "3pa", "3pm", "2pa", "2pm", fta, ftm,
	orb, drb, trb, ast, stl, blk, tov, pf,
	rc_pc_m, rc_pc_a, rc_pl_m, rc_pl_a, rc_pr_m, rc_pr_a,
	rc_mbl_m, rc_mbl_a, rc_mbr_m, rc_mbr_a,
	rc_mel_m, rc_mel_a, rc_mer_m, rc_mer_a,
	rc_c3l_m, rc_c3l_a, rc_c3r_m, rc_c3r_a,
	rc_ce3l_m, rc_ce3l_a, rc_ce3r_m, rc_ce3r_a,
	rc_e3l_m, rc_e3l_a, rc_e3r_m, rc_e3r_a`

// InsertPlayerGames bulk-inserts player game records in a transaction.
// Uses INSERT OR REPLACE so re-importing a file is idempotent.
func (db *DB) InsertPlayerGames(recs []model.GameRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_games(` + playerGameColumns + `)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,
		        ?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		z := r.Zones
		_, err = stmt.Exec(
			r.PlayerID, r.PlayerName, r.TeamID, r.MatchID, r.Season, r.Competition,
			r.Seconds, r.Pts, r.FGA, r.FGM, r.ThreePA, r.ThreePM, r.TwoPA, r.TwoPM, r.FTA, r.FTM,
			r.ORB, r.DRB, r.TRB, r.AST, r.STL, r.BLK, r.TOV, r.PF,
			z.PC.Made, z.PC.Attempted, z.PL.Made, z.PL.Attempted, z.PR.Made, z.PR.Attempted,
			z.MBL.Made, z.MBL.Attempted, z.MBR.Made, z.MBR.Attempted,
			z.MEL.Made, z.MEL.Attempted, z.MER.Made, z.MER.Attempted,
			z.C3L.Made, z.C3L.Attempted, z.C3R.Made, z.C3R.Attempted,
			z.CE3L.Made, z.CE3L.Attempted, z.CE3R.Made, z.CE3R.Attempted,
			z.E3L.Made, z.E3L.Attempted, z.E3R.Made, z.E3R.Attempted,
		)
		if err != nil {
			return fmt.Errorf("insert player_games for %s/%s: %w", r.PlayerID, r.MatchID, err)
		}
	}
	return tx.Commit()
}

// InsertTeamGames bulk-inserts team game records in a transaction.
func (db *DB) InsertTeamGames(recs []model.TeamGameRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_games(team_id, match_id, season, competition, pts, fga, fta, orb, tov)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		_, err = stmt.Exec(r.TeamID, r.MatchID, r.Season, r.Competition, r.Pts, r.FGA, r.FTA, r.ORB, r.TOV)
		if err != nil {
			return fmt.Errorf("insert team_games for %s/%s: %w", r.TeamID, r.MatchID, err)
		}
	}
	return tx.Commit()
}

// PlayerGames loads the player game rows for one season and competition.
// Zero-minute rows are filtered at query level, mirroring the feed query.
func (db *DB) PlayerGames(season, competition string) ([]model.GameRecord, error) {
	rows, err := db.conn.Query(`
		SELECT `+playerGameColumns+`
		FROM player_games
		WHERE season = ? AND competition = ? AND minutes > 0
		ORDER BY player_id, match_id`, season, competition)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.GameRecord
	for rows.Next() {
		var r model.GameRecord
		z := &r.Zones
		err := rows.Scan(
			&r.PlayerID, &r.PlayerName, &r.TeamID, &r.MatchID, &r.Season, &r.Competition,
			&r.Seconds, &r.Pts, &r.FGA, &r.FGM, &r.ThreePA, &r.ThreePM, &r.TwoPA, &r.TwoPM, &r.FTA, &r.FTM,
			&r.ORB, &r.DRB, &r.TRB, &r.AST, &r.STL, &r.BLK, &r.TOV, &r.PF,
			&z.PC.Made, &z.PC.Attempted, &z.PL.Made, &z.PL.Attempted, &z.PR.Made, &z.PR.Attempted,
			&z.MBL.Made, &z.MBL.Attempted, &z.MBR.Made, &z.MBR.Attempted,
			&z.MEL.Made, &z.MEL.Attempted, &z.MER.Made, &z.MER.Attempted,
			&z.C3L.Made, &z.C3L.Attempted, &z.C3R.Made, &z.C3R.Attempted,
			&z.CE3L.Made, &z.CE3L.Attempted, &z.CE3R.Made, &z.CE3R.Attempted,
			&z.E3L.Made, &z.E3L.Attempted, &z.E3R.Made, &z.E3R.Attempted,
		)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// TeamGames loads the team game rows for one season and competition.
func (db *DB) TeamGames(season, competition string) ([]model.TeamGameRecord, error) {
	rows, err := db.conn.Query(`
		SELECT team_id, match_id, season, competition, pts, fga, fta, orb, tov
		FROM team_games
		WHERE season = ? AND competition = ?
		ORDER BY match_id, team_id`, season, competition)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.TeamGameRecord
	for rows.Next() {
		var r model.TeamGameRecord
		if err := rows.Scan(&r.TeamID, &r.MatchID, &r.Season, &r.Competition, &r.Pts, &r.FGA, &r.FTA, &r.ORB, &r.TOV); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Seasons lists the distinct seasons present in the snapshot.
func (db *DB) Seasons() ([]string, error) {
	return db.distinct("SELECT DISTINCT season FROM player_games ORDER BY season")
}

// Competitions lists the distinct competitions present in the snapshot.
func (db *DB) Competitions() ([]string, error) {
	return db.distinct("SELECT DISTINCT competition FROM player_games ORDER BY competition")
}

func (db *DB) distinct(query string) ([]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
