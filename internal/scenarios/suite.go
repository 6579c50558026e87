// Package scenarios holds the scripted shopping journeys and the runner
// that plays them, in order, on one shared browser tab.
package scenarios

import (
	"context"
	"time"

	"github.com/themizzi/shopflow/internal/pages"
)

// Scenario is one named step of a suite
type Scenario struct {
	Name string
	Run  func(ctx context.Context, s *Suite) error
}

// Pauses are the fixed waits the journeys take between steps
type Pauses struct {
	ImageDelay    time.Duration
	ReviewDelay   time.Duration
	AfterDelete   time.Duration
	AfterIncrease time.Duration
	AfterDecrease time.Duration
}

// DefaultPauses returns the pauses a human-paced run uses
func DefaultPauses() Pauses {
	return Pauses{
		ImageDelay:    2 * time.Second,
		ReviewDelay:   2 * time.Second,
		AfterDelete:   time.Second,
		AfterIncrease: 2 * time.Second,
		AfterDecrease: time.Second,
	}
}

// Suite is the state shared by the scenarios of one run. Every page object
// is bound to the same session, so each scenario starts where the previous
// one left the tab.
type Suite struct {
	Session *pages.Session
	Search  *pages.SearchPage
	Product *pages.ProductPage
	Basket  *pages.BasketPage
	Pauses  Pauses

	// Article is the article number read by the first journey
	Article string
}

// NewSuite binds fresh page objects to session
func NewSuite(session *pages.Session, pauses Pauses) *Suite {
	return &Suite{
		Session: session,
		Search:  pages.NewSearchPage(session),
		Product: pages.NewProductPage(session),
		Basket:  pages.NewBasketPage(session),
		Pauses:  pauses,
	}
}
