// Package report collects the outcome of one scenario run and renders it.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of one scenario
type Status string

// Statuses
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one scenario, after retries
type Result struct {
	Name     string
	Status   Status
	Attempts int
	Duration time.Duration
	Error    string
}

// Report is the outcome of one run of a suite
type Report struct {
	RunID      uuid.UUID
	Suite      string
	BaseURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

//go:embed report.html.tmpl
var htmlTemplate string

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"duration": func(d time.Duration) string { return d.Round(time.Millisecond).String() },
	"stamp":    func(t time.Time) string { return t.Format(time.RFC3339) },
}).Parse(htmlTemplate))

// New starts a report for suite run against baseURL
func New(suite, baseURL string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Suite:     suite,
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}
}

// Add appends a scenario result
func (r *Report) Add(result Result) {
	r.Results = append(r.Results, result)
}

// Finish stamps the end of the run
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns how long the run took, or zero before Finish
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Count returns the number of results with status
func (r *Report) Count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the number of failed scenarios
func (r *Report) Failed() int {
	return r.Count(StatusFailed)
}

// Summary renders the run as plain text, one line per scenario
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (run %s)\n", r.Suite, r.RunID)
	for _, result := range r.Results {
		line := fmt.Sprintf("  %-7s %s", result.Status, result.Name)
		if result.Attempts > 1 {
			line += fmt.Sprintf(" (%d attempts)", result.Attempts)
		}
		if result.Status != StatusSkipped {
			line += fmt.Sprintf(" [%s]", result.Duration.Round(time.Millisecond))
		}
		b.WriteString(line + "\n")
		if result.Error != "" {
			fmt.Fprintf(&b, "          %s\n", result.Error)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed, %d skipped",
		r.Count(StatusPassed), r.Failed(), r.Count(StatusSkipped))
	if d := r.Duration(); d > 0 {
		fmt.Fprintf(&b, " in %s", d.Round(time.Millisecond))
	}
	return b.String()
}

// WriteHTML renders the run as a standalone HTML page
func (r *Report) WriteHTML(w io.Writer) error {
	if err := reportTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the HTML report to path
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := r.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
