package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/pages"
	"github.com/themizzi/shopflow/internal/report"
	"github.com/themizzi/shopflow/internal/scenarios"
)

// ErrScenariosFailed is returned when at least one scenario of a run failed
var ErrScenariosFailed = errors.New("scenarios failed")

// Launcher opens the tab a run drives. The returned func tears it down.
type Launcher func(cfg *config.BrowserConfig) (driver.Page, func() error, error)

// LaunchBrowser starts playwright and opens a single tab
func LaunchBrowser(cfg *config.BrowserConfig) (driver.Page, func() error, error) {
	browser, err := driver.Launch(cfg)
	if err != nil {
		return nil, nil, err
	}
	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		return nil, nil, err
	}
	return page, browser.Close, nil
}

// RunOptions configures one run of the Product Flow suite
type RunOptions struct {
	Browser *config.BrowserConfig
	Runner  config.RunnerConfig
	// Filter is a regular expression on scenario names; empty runs everything
	Filter string
	Pauses scenarios.Pauses
	// Launch defaults to LaunchBrowser
	Launch Launcher
	// Output receives the plain text summary; defaults to stdout
	Output io.Writer
}

// RunScenarios plays the Product Flow suite on a fresh tab, prints the
// summary and writes the HTML report when a path is configured. The report
// is returned even when scenarios failed.
func RunScenarios(ctx context.Context, opts RunOptions) (*report.Report, error) {
	runner, err := scenarios.NewRunner(opts.Runner, opts.Filter)
	if err != nil {
		return nil, err
	}

	launch := opts.Launch
	if launch == nil {
		launch = LaunchBrowser
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	page, closeBrowser, err := launch(opts.Browser)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeBrowser(); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	session := pages.NewSession(page, pages.NewOptions(opts.Browser))
	suite := scenarios.NewSuite(session, opts.Pauses)
	rep := report.New(scenarios.ProductFlowName, opts.Browser.BaseURL.String())

	log.Printf("Starting run %s against %s", rep.RunID, rep.BaseURL)
	runner.Run(ctx, suite, scenarios.ProductFlow(), rep)
	fmt.Fprintln(out, rep.Summary())

	if path := opts.Runner.ReportPath; path != "" {
		if err := rep.WriteFile(path); err != nil {
			return rep, err
		}
		log.Printf("Report written to %s", path)
	}

	if failed := rep.Failed(); failed > 0 {
		return rep, fmt.Errorf("%w: %d of %d", ErrScenariosFailed, failed, len(rep.Results))
	}
	return rep, nil
}

// ListScenarios writes the names of the scenarios the filter selects
func ListScenarios(w io.Writer, filter string) error {
	runner, err := scenarios.NewRunner(config.RunnerConfig{}, filter)
	if err != nil {
		return err
	}
	for _, scenario := range scenarios.ProductFlow() {
		if runner.Selected(scenario.Name) {
			fmt.Fprintln(w, scenario.Name)
		}
	}
	return nil
}
