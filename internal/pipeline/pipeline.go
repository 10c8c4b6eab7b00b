// Package pipeline orchestrates the transformation run: extract the season
// snapshot, resolve opponents, filter, derive per-game features, aggregate
// per player, and scale the clustering matrix. Stages run strictly forward
// and each one materializes its output before the next begins.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfarres/go-feb-stats/internal/aggregate"
	"github.com/mfarres/go-feb-stats/internal/cleaner"
	"github.com/mfarres/go-feb-stats/internal/config"
	"github.com/mfarres/go-feb-stats/internal/features"
	"github.com/mfarres/go-feb-stats/internal/model"
	"github.com/mfarres/go-feb-stats/internal/scale"
)

// Source supplies the season snapshot. Implemented by storage.DB; tests
// substitute a stub.
type Source interface {
	PlayerGames(season, competition string) ([]model.GameRecord, error)
	TeamGames(season, competition string) ([]model.TeamGameRecord, error)
}

// PlayerInfo identifies one row of the output matrices; the slice is
// aligned with the frame rows and the aggregate slice.
type PlayerInfo struct {
	PlayerID   string
	PlayerName string
}

// Result holds the fully materialized outputs of one run.
type Result struct {
	RunID       string
	Season      string
	Competition string

	// HasOpponent reports whether opponent data was resolved for this run;
	// when false the clustering features omit der.
	HasOpponent bool

	ClusteringFeatures []string
	AllFeatures        []string

	Players    []PlayerInfo
	Aggregates []model.PlayerAggregate
	RawTotals  []model.RawTotals

	// Clean is the clustering matrix after Inf/NaN handling; Scaled is the
	// same matrix standardized. Row order matches Players.
	Clean  model.Frame
	Scaled model.Frame
}

// Pipeline runs the extract→transform sequence against a Source.
type Pipeline struct {
	cfg config.Config
	src Source
	log *slog.Logger
}

// New builds a pipeline. The config is copied; a run never mutates it.
func New(cfg config.Config, src Source, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, src: src, log: log}
}

// Run executes the pipeline for the configured season and competition.
// Configuration errors fail before any extraction; data-quality conditions
// are logged and recovered with deterministic fallbacks.
func (p *Pipeline) Run() (*Result, error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "season", p.cfg.Season, "competition", p.cfg.Competition)

	// Fail on a bad scaler type before any I/O.
	scaler, err := scale.New(p.cfg.ScalerType)
	if err != nil {
		return nil, err
	}

	log.Info("extracting season snapshot")
	playerRows, err := p.src.PlayerGames(p.cfg.Season, p.cfg.Competition)
	if err != nil {
		return nil, fmt.Errorf("load player games: %w", err)
	}
	teamRows, err := p.src.TeamGames(p.cfg.Season, p.cfg.Competition)
	if err != nil {
		return nil, fmt.Errorf("load team games: %w", err)
	}
	log.Info("extracted", "player_rows", len(playerRows), "team_rows", len(teamRows))

	ix := ResolveOpponents(log, teamRows, p.cfg.FreeThrowFactor)
	hasOpponent := ix.Len() > 0
	if !hasOpponent {
		log.Warn("no opponent data available, der dropped from the feature set")
	}

	recs := cleaner.FilterByMinutes(log, playerRows, p.cfg.MinMinutes)
	recs = cleaner.FilterByGamesPlayed(log, recs, p.cfg.MinGames)

	enriched := AttachOpponents(recs, ix)

	eng := features.Engineer{
		TargetMinutes:        p.cfg.TargetMinutes,
		FreeThrowFactor:      p.cfg.FreeThrowFactor,
		EfficiencyMultiplier: p.cfg.EfficiencyMultiplier,
	}
	rows := eng.DeriveAll(enriched)

	clusterFeats := eng.ClusteringFeatures(hasOpponent)
	allFeats := append(append([]string(nil), clusterFeats...), eng.EDAFeatures()...)

	var aggs []model.PlayerAggregate
	if p.cfg.Weighted {
		aggs = aggregate.Weighted(rows, allFeats)
	} else {
		aggs = aggregate.Simple(rows, allFeats)
	}
	rawTotals := aggregate.RawTotals(recs)
	log.Info("aggregated", "game_rows", len(rows), "players", len(aggs),
		"mode", aggregationMode(p.cfg.Weighted))

	players := make([]PlayerInfo, len(aggs))
	frame := model.NewFrame(clusterFeats, len(aggs))
	for i, a := range aggs {
		players[i] = PlayerInfo{PlayerID: a.PlayerID, PlayerName: a.PlayerName}
		row := make([]float64, len(clusterFeats))
		for j, f := range clusterFeats {
			row[j] = a.Values[f]
		}
		frame.Rows = append(frame.Rows, row)
	}

	cleaner.ClipPercentages(log, &frame, eng.PercentageFeatures())

	scaled, clean, err := scaler.FitTransform(frame, p.cfg.HandleInfinity, p.cfg.FillNAValue)
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}
	log.Info("scaled clustering matrix",
		"rows", len(scaled.Rows), "features", len(scaled.Columns), "scaler", scaler.Kind())

	return &Result{
		RunID:              runID,
		Season:             p.cfg.Season,
		Competition:        p.cfg.Competition,
		HasOpponent:        hasOpponent,
		ClusteringFeatures: clusterFeats,
		AllFeatures:        allFeats,
		Players:            players,
		Aggregates:         aggs,
		RawTotals:          rawTotals,
		Clean:              clean,
		Scaled:             scaled,
	}, nil
}

func aggregationMode(weighted bool) string {
	if weighted {
		return "weighted"
	}
	return "simple"
}
