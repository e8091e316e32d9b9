package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"equipcare-cloud/internal/analytics/domain/kpi"
)

// Config defines analytics engine configuration.
type Config struct {
	Scoring      kpi.ScoringConfig `yaml:"scoring"`
	FetchWorkers int               `yaml:"fetch_workers"`
}

const defaultFetchWorkers = 8

// LoadConfig loads analytics config from yaml or env. Missing values
// fall back to the historical defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Scoring:      kpi.DefaultScoringConfig(),
		FetchWorkers: getenvIntDefault("ANALYTICS_FETCH_WORKERS", defaultFetchWorkers),
	}

	if path := os.Getenv("ANALYTICS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Scoring = cfg.Scoring.WithDefaults()
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}
	if err := validateScoring(cfg.Scoring); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateScoring(cfg kpi.ScoringConfig) error {
	if cfg.DowntimeRefHours <= 0 || cfg.FaultRefCount <= 0 {
		return errors.New("analytics config: reference caps must be positive")
	}
	if cfg.CriticalThreshold > cfg.IssueThreshold {
		return errors.New("analytics config: critical threshold above issue threshold")
	}
	return nil
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
