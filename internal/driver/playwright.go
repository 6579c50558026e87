package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type pwPage struct {
	page playwright.Page
}

// NewPage adapts a playwright page to the driver contract
func NewPage(page playwright.Page) Page {
	return &pwPage{page: page}
}

func (p *pwPage) Goto(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return translate(err)
	}
	return nil
}

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) GoBack() error {
	if _, err := p.page.GoBack(); err != nil {
		return translate(err)
	}
	return nil
}

func (p *pwPage) Locator(selector string, filters ...Filter) Locator {
	return &pwLocator{loc: applyFilters(p.page.Locator(selector), filters)}
}

func (p *pwPage) WaitForLoadState(state LoadState) error {
	return translate(p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: loadState(state),
	}))
}

func (p *pwPage) WaitForSelector(selector string) error {
	_, err := p.page.WaitForSelector(selector)
	return translate(err)
}

func (p *pwPage) PressKey(key string) error {
	return translate(p.page.Keyboard().Press(key))
}

func (p *pwPage) Close() error {
	return p.page.Close()
}

type pwLocator struct {
	loc playwright.Locator
}

func (l *pwLocator) Locator(selector string, filters ...Filter) Locator {
	return &pwLocator{loc: applyFilters(l.loc.Locator(selector), filters)}
}

func (l *pwLocator) First() Locator {
	return &pwLocator{loc: l.loc.First()}
}

func (l *pwLocator) Last() Locator {
	return &pwLocator{loc: l.loc.Last()}
}

func (l *pwLocator) Nth(index int) Locator {
	return &pwLocator{loc: l.loc.Nth(index)}
}

func (l *pwLocator) Click() error {
	return translate(l.loc.Click())
}

func (l *pwLocator) Fill(value string) error {
	return translate(l.loc.Fill(value))
}

func (l *pwLocator) Press(key string) error {
	return translate(l.loc.Press(key))
}

func (l *pwLocator) ScrollIntoViewIfNeeded() error {
	return translate(l.loc.ScrollIntoViewIfNeeded())
}

func (l *pwLocator) WaitFor(state ElementState, timeout time.Duration) error {
	opts := playwright.LocatorWaitForOptions{
		State: waitForState(state),
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	return translate(l.loc.WaitFor(opts))
}

func (l *pwLocator) Count() (int, error) {
	n, err := l.loc.Count()
	return n, translate(err)
}

func (l *pwLocator) TextContent() (string, error) {
	text, err := l.loc.TextContent()
	return text, translate(err)
}

func (l *pwLocator) AllTextContents() ([]string, error) {
	texts, err := l.loc.AllTextContents()
	return texts, translate(err)
}

func (l *pwLocator) GetAttribute(name string) (string, error) {
	value, err := l.loc.GetAttribute(name)
	return value, translate(err)
}

func (l *pwLocator) InputValue() (string, error) {
	value, err := l.loc.InputValue()
	return value, translate(err)
}

func (l *pwLocator) IsVisible() (bool, error) {
	visible, err := l.loc.IsVisible()
	return visible, translate(err)
}

func (l *pwLocator) Evaluate(expression string, arg any) (any, error) {
	result, err := l.loc.Evaluate(expression, arg)
	return result, translate(err)
}

// applyFilters chains one playwright filter per driver filter field
func applyFilters(loc playwright.Locator, filters []Filter) playwright.Locator {
	for _, f := range filters {
		if f.HasText != "" {
			loc = loc.Filter(playwright.LocatorFilterOptions{HasText: f.HasText})
		}
		if f.HasPattern != nil {
			loc = loc.Filter(playwright.LocatorFilterOptions{HasText: f.HasPattern})
		}
		if has, ok := f.Has.(*pwLocator); ok {
			loc = loc.Filter(playwright.LocatorFilterOptions{Has: has.loc})
		}
	}
	return loc
}

func loadState(state LoadState) *playwright.LoadState {
	switch state {
	case LoadStateDOMContentLoaded:
		return playwright.LoadStateDomcontentloaded
	case LoadStateNetworkIdle:
		return playwright.LoadStateNetworkidle
	default:
		return playwright.LoadStateLoad
	}
}

func waitForState(state ElementState) *playwright.WaitForSelectorState {
	switch state {
	case StateHidden:
		return playwright.WaitForSelectorStateHidden
	case StateAttached:
		return playwright.WaitForSelectorStateAttached
	case StateDetached:
		return playwright.WaitForSelectorStateDetached
	default:
		return playwright.WaitForSelectorStateVisible
	}
}

// translate maps playwright timeouts onto ErrTimeout, keeping the original message
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
