//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/report"
	"github.com/themizzi/shopflow/internal/scenarios"
)

// TestProductFlow plays the whole suite against the fixture storefront
// Feature: Product Flow
//
//	As a shopper
//	I want to find sneakers, compare two of them and tidy my basket
//	So that I end up back on the home page with an empty basket
func TestProductFlow(t *testing.T) {
	session, page := newSession(t)
	suite := scenarios.NewSuite(session, scenarios.Pauses{
		ImageDelay:  100 * time.Millisecond,
		ReviewDelay: 100 * time.Millisecond,
	})

	runner, err := scenarios.NewRunner(config.RunnerConfig{ScenarioTimeout: 60 * time.Second}, "")
	require.NoError(t, err)

	rep := report.New(scenarios.ProductFlowName, fixture.BaseURL)
	runner.Run(context.Background(), suite, scenarios.ProductFlow(), rep)
	t.Log(rep.Summary())

	require.Len(t, rep.Results, 3)
	for _, result := range rep.Results {
		require.Equal(t, report.StatusPassed, result.Status, "%s: %s", result.Name, result.Error)
	}

	// The second search result of Nike sneakers between 1000 and 3000 roubles, cheapest first
	require.Equal(t, "146972833", suite.Article)

	// Then I am back on the home page
	require.Equal(t, models.ViewHome, session.View())
	require.True(t, strings.TrimSuffix(page.URL(), "/") == fixture.BaseURL, "ended on %s", page.URL())

	// And my basket is empty
	count, err := page.Locator(".navbar-pc__notify").TextContent()
	require.NoError(t, err)
	require.Equal(t, "0", strings.TrimSpace(count))
}
