package pages

import (
	"context"
	"fmt"
	"net/url"

	"github.com/themizzi/shopflow/internal/models"
)

// Navigator opens site paths on the session's tab
type Navigator struct {
	session *Session
}

// NewNavigator creates a navigator for session
func NewNavigator(session *Session) *Navigator {
	return &Navigator{session: session}
}

// Goto navigates to path (the site root when empty) resolved against the
// base URL, then gives a bot challenge time to appear.
func (n *Navigator) Goto(ctx context.Context, path string) error {
	if path == "" {
		path = "/"
	}
	target, err := n.Resolve(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.session.page.Goto(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	n.session.reset(models.ViewFromURL(n.session.page.URL()))

	return n.handlePossibleChallenge(ctx)
}

// Resolve returns the absolute form of path against the base URL
func (n *Navigator) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	base := n.session.opts.BaseURL
	if base == nil {
		if !ref.IsAbs() {
			return "", fmt.Errorf("cannot resolve %q without a base URL", path)
		}
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

// URL returns the tab's current URL
func (n *Navigator) URL() string {
	return n.session.page.URL()
}

// handlePossibleChallenge only waits; nothing detects or solves a challenge yet.
func (n *Navigator) handlePossibleChallenge(ctx context.Context) error {
	return n.session.Pause(ctx, n.session.opts.SettleDelay)
}
