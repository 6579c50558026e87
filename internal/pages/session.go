// Package pages holds the page objects of the storefront: one navigator and
// one object per logical page, all bound to a single shared Session.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/themizzi/shopflow/internal/config"
	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/models"
)

// Options tunes the fixed delays and bounded waits used by the page objects
type Options struct {
	BaseURL *url.URL
	// SettleDelay follows every navigation
	SettleDelay time.Duration
	// ActionTimeout bounds condition polls, like the driver's own action timeout
	ActionTimeout time.Duration
	// ConfirmTimeout bounds add-to-cart confirmations
	ConfirmTimeout time.Duration
	// LoaderTimeout bounds the reviews preloader
	LoaderTimeout      time.Duration
	FilterBlurDelay    time.Duration
	ResetDelay         time.Duration
	PriceRetryInterval time.Duration
	PollInterval       time.Duration
}

// NewOptions derives page-object options from the browser configuration
func NewOptions(cfg *config.BrowserConfig) Options {
	return Options{
		BaseURL:            cfg.BaseURL,
		SettleDelay:        cfg.SettleDelay,
		ActionTimeout:      cfg.ActionTimeout,
		ConfirmTimeout:     5 * time.Second,
		LoaderTimeout:      30 * time.Second,
		FilterBlurDelay:    time.Second,
		ResetDelay:         time.Second,
		PriceRetryInterval: time.Second,
		PollInterval:       100 * time.Millisecond,
	}
}

// Session is the single handle on the shared browser tab. Every page object
// is constructed from it; it also carries the view the tab is believed to show.
type Session struct {
	page driver.Page
	opts Options

	mu   sync.Mutex
	view models.View
}

// NewSession binds a session to page
func NewSession(page driver.Page, opts Options) *Session {
	return &Session{
		page: page,
		opts: opts,
		view: models.ViewUnknown,
	}
}

// Page returns the underlying driver page
func (s *Session) Page() driver.Page {
	return s.page
}

// Options returns the session options
func (s *Session) Options() Options {
	return s.opts
}

// View returns the current view
func (s *Session) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// enter moves to next after validating the transition
func (s *Session) enter(next models.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, err := s.view.Transition(next)
	if err != nil {
		return err
	}
	s.view = view
	return nil
}

// enterURLView moves to the view the current URL renders
func (s *Session) enterURLView() error {
	return s.enter(models.ViewFromURL(s.page.URL()))
}

// reset forces the view after a full navigation, which discards any prior state
func (s *Session) reset(view models.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// Pause sleeps for d unless ctx ends first
func (s *Session) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) waitLoad(ctx context.Context, state driver.LoadState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.page.WaitForLoadState(state); err != nil {
		return fmt.Errorf("failed to wait for %s: %w", state, err)
	}
	return nil
}

func (s *Session) networkIdle(ctx context.Context) error {
	return s.waitLoad(ctx, driver.LoadStateNetworkIdle)
}

func (s *Session) waitFor(ctx context.Context, loc driver.Locator, state driver.ElementState, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return loc.WaitFor(state, timeout)
}

var errConditionNotMet = errors.New("condition not met")

// poll re-evaluates cond every PollInterval until it holds, bounded by ActionTimeout
func (s *Session) poll(ctx context.Context, what string, cond func() (bool, error)) error {
	backoff := retry.WithMaxDuration(s.opts.ActionTimeout, retry.NewConstant(s.opts.PollInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := cond()
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(errConditionNotMet)
		}
		return nil
	})
	if errors.Is(err, errConditionNotMet) {
		return fmt.Errorf("%w: %s not reached within %s", driver.ErrTimeout, what, s.opts.ActionTimeout)
	}
	return err
}

// waitURLChange waits for the tab to leave before. Actions that navigate
// return before the new document commits, so load-state waits alone could
// observe the old page. A URL that never changes is logged and tolerated.
func (s *Session) waitURLChange(ctx context.Context, before string) error {
	err := s.poll(ctx, "navigation away from "+before, func() (bool, error) {
		return s.page.URL() != before, nil
	})
	if errors.Is(err, driver.ErrTimeout) {
		log.Printf("Warning: %v", err)
		return nil
	}
	return err
}

// followNavigation waits for a navigation started from before to settle and
// records the view of the new URL
func (s *Session) followNavigation(ctx context.Context, before string) error {
	if err := s.waitURLChange(ctx, before); err != nil {
		return err
	}
	if err := s.networkIdle(ctx); err != nil {
		return err
	}
	return s.enterURLView()
}

// firstVisible waits for any locator to become visible and returns the
// index of the first one that does, or -1 when all of them fail.
func (s *Session) firstVisible(ctx context.Context, timeout time.Duration, locs ...driver.Locator) int {
	results := make(chan int, len(locs))
	for i, loc := range locs {
		go func() {
			if err := loc.WaitFor(driver.StateVisible, timeout); err != nil {
				results <- -1
				return
			}
			results <- i
		}()
	}

	for range locs {
		select {
		case <-ctx.Done():
			return -1
		case i := <-results:
			if i >= 0 {
				return i
			}
		}
	}
	return -1
}
