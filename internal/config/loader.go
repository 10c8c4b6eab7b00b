package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. FEBSTATS_SEASON.
const EnvPrefix = "FEBSTATS_"

// Load builds a Config by layering sources. Order of precedence (low -> high):
//  1. defaults (Default())
//  2. YAML file at path, if path is non-empty
//  3. environment variables with the FEBSTATS_ prefix
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// FEBSTATS_MIN_GAMES -> min_games, matching the koanf struct tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations that would make a run meaningless before
// any I/O happens. Scaler and aggregation strategy strings are checked by
// their owning components.
func (c Config) Validate() error {
	if c.TargetMinutes <= 0 {
		return fmt.Errorf("%w: target_minutes must be positive, got %d", ErrInvalidConfig, c.TargetMinutes)
	}
	if c.FreeThrowFactor < 0 {
		return fmt.Errorf("%w: free_throw_factor must not be negative, got %g", ErrInvalidConfig, c.FreeThrowFactor)
	}
	if c.EfficiencyMultiplier <= 0 {
		return fmt.Errorf("%w: efficiency_multiplier must be positive, got %g", ErrInvalidConfig, c.EfficiencyMultiplier)
	}
	if c.MinGames < 0 {
		return fmt.Errorf("%w: min_games must not be negative, got %d", ErrInvalidConfig, c.MinGames)
	}
	switch c.OutputFormat {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("%w: unknown output_format %q", ErrInvalidConfig, c.OutputFormat)
	}
	return nil
}
