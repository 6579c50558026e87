package config

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultScenarioTimeout bounds each attempt of a scenario
const DefaultScenarioTimeout = 60 * time.Second

// RunnerConfig holds configuration for executing scenario suites
type RunnerConfig struct {
	ScenarioTimeout time.Duration
	Retries         int
	ReportPath      string
}

// LoadRunnerConfig loads runner configuration from environment variables.
// Retries default to 2 on CI and 0 locally.
func LoadRunnerConfig(getenv func(string) string) (*RunnerConfig, error) {
	config := &RunnerConfig{
		ScenarioTimeout: DefaultScenarioTimeout,
		ReportPath:      getenv("SHOPFLOW_REPORT"),
	}

	if getenv("CI") != "" {
		config.Retries = 2
	}

	if v := getenv("SHOPFLOW_RETRIES"); v != "" {
		retries, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SHOPFLOW_RETRIES must be an integer: %w", err)
		}
		if retries < 0 {
			return nil, fmt.Errorf("SHOPFLOW_RETRIES must not be negative")
		}
		config.Retries = retries
	}

	if err := parseDuration(getenv, "SHOPFLOW_SCENARIO_TIMEOUT", &config.ScenarioTimeout); err != nil {
		return nil, err
	}
	if config.ScenarioTimeout == 0 {
		return nil, fmt.Errorf("SHOPFLOW_SCENARIO_TIMEOUT must be positive")
	}

	return config, nil
}
