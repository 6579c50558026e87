// Package driver defines the slice of a browser-automation driver that the
// page objects consume, and binds it to playwright-go.
package driver

import (
	"errors"
	"regexp"
	"time"
)

// ErrTimeout is returned (wrapped) when a wait or action exceeds its timeout.
var ErrTimeout = errors.New("driver timeout")

// LoadState is a document load milestone
type LoadState string

// Load states
const (
	LoadStateLoad             LoadState = "load"
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"
	LoadStateNetworkIdle      LoadState = "networkidle"
)

// ElementState is a state a locator can be waited into
type ElementState string

// Element states
const (
	StateVisible  ElementState = "visible"
	StateHidden   ElementState = "hidden"
	StateAttached ElementState = "attached"
	StateDetached ElementState = "detached"
)

// Filter narrows a locator. Zero fields are ignored.
type Filter struct {
	// HasText matches elements whose text contains the string, case-insensitively.
	HasText string
	// HasPattern matches elements whose text matches the expression.
	HasPattern *regexp.Regexp
	// Has matches elements that contain an element matching this locator.
	Has Locator
}

// Page is one browser tab. Implementations are safe for concurrent use by
// the two fan-out compositions in the page objects.
type Page interface {
	Goto(url string) error
	URL() string
	GoBack() error
	Locator(selector string, filters ...Filter) Locator
	WaitForLoadState(state LoadState) error
	WaitForSelector(selector string) error
	PressKey(key string) error
	Close() error
}

// Locator is a lazily re-resolved reference to zero or more elements.
// Nothing is looked up until an action or query runs.
type Locator interface {
	Locator(selector string, filters ...Filter) Locator
	First() Locator
	Last() Locator
	Nth(index int) Locator

	Click() error
	Fill(value string) error
	Press(key string) error
	ScrollIntoViewIfNeeded() error
	// WaitFor blocks until the locator reaches state. A zero timeout uses the driver default.
	WaitFor(state ElementState, timeout time.Duration) error

	Count() (int, error)
	TextContent() (string, error)
	AllTextContents() ([]string, error)
	GetAttribute(name string) (string, error)
	// InputValue reads the live value of an input, which the value attribute does not track
	InputValue() (string, error)
	IsVisible() (bool, error)
	Evaluate(expression string, arg any) (any, error)
}
