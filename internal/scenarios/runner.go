package scenarios

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/report"
)

// ErrSkipped marks a scenario that did not run because an earlier one failed
var ErrSkipped = errors.New("skipped after an earlier failure")

// Runner plays scenarios one after another on a single suite
type Runner struct {
	cfg  config.RunnerConfig
	grep *regexp.Regexp
}

// NewRunner creates a runner. A non-empty pattern restricts the run to
// scenarios whose name matches it.
func NewRunner(cfg config.RunnerConfig, pattern string) (*Runner, error) {
	if cfg.ScenarioTimeout <= 0 {
		cfg.ScenarioTimeout = config.DefaultScenarioTimeout
	}
	r := &Runner{cfg: cfg}
	if pattern != "" {
		grep, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario filter %q: %w", pattern, err)
		}
		r.grep = grep
	}
	return r, nil
}

// Selected reports whether the named scenario passes the filter
func (r *Runner) Selected(name string) bool {
	return r.grep == nil || r.grep.MatchString(name)
}

// Run plays the selected scenarios in order and records each outcome in rep.
// Scenarios share the tab, so once one fails the rest are skipped.
func (r *Runner) Run(ctx context.Context, suite *Suite, scenarios []Scenario, rep *report.Report) {
	defer rep.Finish()

	failed := false
	for _, scenario := range scenarios {
		if !r.Selected(scenario.Name) {
			continue
		}
		if failed || ctx.Err() != nil {
			rep.Add(report.Result{Name: scenario.Name, Status: report.StatusSkipped, Error: ErrSkipped.Error()})
			continue
		}

		result := r.runScenario(ctx, suite, scenario)
		rep.Add(result)
		if result.Status == report.StatusFailed {
			failed = true
		}
	}
}

// runScenario runs one scenario, retrying up to the configured count
func (r *Runner) runScenario(ctx context.Context, suite *Suite, scenario Scenario) report.Result {
	result := report.Result{Name: scenario.Name}
	start := time.Now()

	var err error
	for attempt := 0; attempt <= r.cfg.Retries; attempt++ {
		result.Attempts++
		err = r.attempt(ctx, suite, scenario)
		if err == nil || ctx.Err() != nil {
			break
		}
		if attempt < r.cfg.Retries {
			log.Printf("Warning: scenario %q failed on attempt %d, retrying: %v", scenario.Name, result.Attempts, err)
		}
	}

	result.Duration = time.Since(start)
	if err != nil {
		result.Status = report.StatusFailed
		result.Error = err.Error()
		log.Printf("Scenario %q failed: %v", scenario.Name, err)
		return result
	}
	result.Status = report.StatusPassed
	log.Printf("Scenario %q passed in %s", scenario.Name, result.Duration.Round(time.Millisecond))
	return result
}

func (r *Runner) attempt(ctx context.Context, suite *Suite, scenario Scenario) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ScenarioTimeout)
	defer cancel()

	err := scenario.Run(ctx, suite)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s: %w", r.cfg.ScenarioTimeout, err)
	}
	return err
}
