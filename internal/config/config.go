// Package config defines the pipeline configuration and its loading.
//
// The Config struct is immutable by convention: it is built once by Load
// (or Default) and passed by value into the pipeline constructor, so runs
// stay reproducible and testable in isolation.
package config

import "path/filepath"

// Output file names for the three artifacts of a pipeline run.
const (
	ScaledFileName     = "players_features_scaled"
	RawFileName        = "players_features_raw"
	AggregatedFileName = "players_aggregated"
)

// Config contains every recognized pipeline option.
type Config struct {
	// DBPath locates the SQLite snapshot database.
	DBPath string `koanf:"db_path"`

	// Season and Competition filter both input tables at query level.
	Season      string `koanf:"season"`
	Competition string `koanf:"competition"`

	// MinGames is the minimum number of games for a player to survive
	// filtering; MinMinutes is the per-game playing-time floor in minutes.
	MinGames   int     `koanf:"min_games"`
	MinMinutes float64 `koanf:"min_minutes"`

	// TargetMinutes is the normalization base for per-minutes rates.
	TargetMinutes int `koanf:"target_minutes"`

	// FreeThrowFactor is the FTA coefficient in the possession and TS%
	// formulas. EfficiencyMultiplier scales OER/DER (per 100 possessions).
	FreeThrowFactor      float64 `koanf:"free_throw_factor"`
	EfficiencyMultiplier float64 `koanf:"efficiency_multiplier"`

	// ScalerType selects the feature scaler: "standard" or "minmax".
	ScalerType string `koanf:"scaler_type"`

	// HandleInfinity replaces ±Inf with NaN before filling; FillNAValue
	// fills every remaining NaN.
	HandleInfinity bool    `koanf:"handle_infinity"`
	FillNAValue    float64 `koanf:"fill_na_value"`

	// Weighted selects minutes-weighted aggregation; false means simple mean.
	Weighted bool `koanf:"weighted"`

	// OutputDir receives the three output tables; OutputFormat is
	// "csv" or "xlsx".
	OutputDir    string `koanf:"output_dir"`
	OutputFormat string `koanf:"output_format"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// Default returns the built-in configuration, mirroring the federation
// feed defaults.
func Default() Config {
	return Config{
		DBPath:               filepath.Join("data", "febstats.db"),
		Season:               "2024-2025",
		Competition:          "Liga EBA",
		MinGames:             5,
		MinMinutes:           0,
		TargetMinutes:        36,
		FreeThrowFactor:      0.44,
		EfficiencyMultiplier: 100,
		ScalerType:           "standard",
		HandleInfinity:       true,
		FillNAValue:          0,
		Weighted:             true,
		OutputDir:            filepath.Join("data", "processed"),
		OutputFormat:         "csv",
		LogLevel:             "info",
	}
}
