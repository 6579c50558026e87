// Package drivertest provides an in-memory driver.Page for page-object tests.
//
// Locators are addressed by a key built from the chain that produced them:
//
//	page.Locator(".a")                       ".a"
//	page.Locator(".a", {HasText: "x"})       ".a|text=x"
//	page.Locator(".a").First()               ".a >> first"
//	page.Locator(".a").Nth(2).Locator("img") ".a >> nth=2 >> img"
//
// Unregistered keys behave like an empty, instantly satisfiable match.
package drivertest

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/themizzi/shopflow/internal/driver"
)

// Element describes what a locator key resolves to
type Element struct {
	Count      int
	Text       string
	Texts      []string
	Attributes map[string]string
	Value      string
	Visible    bool
	EvalResult any

	WaitErr   error
	ActionErr error
	ReadErr   error

	// OnWait overrides WaitErr when set
	OnWait  func(state driver.ElementState, timeout time.Duration) error
	OnClick func()
	OnFill  func(value string)
	OnPress func(key string)
}

// Page is a scripted driver.Page that records every call
type Page struct {
	mu       sync.Mutex
	url      string
	elements map[string]*Element
	calls    []string

	GotoErr      error
	GoBackErr    error
	LoadStateErr error
	SelectorErr  error

	OnGoto      func(url string)
	OnGoBack    func()
	OnLoadState func(state driver.LoadState)
	OnKey       func(key string)
}

// NewPage returns a fake page positioned at url
func NewPage(url string) *Page {
	return &Page{
		url:      url,
		elements: make(map[string]*Element),
	}
}

// Set registers el under key, replacing any previous element
func (p *Page) Set(key string, el *Element) *Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[key] = el
	return el
}

// Update mutates the element under key while holding the page lock
func (p *Page) Update(key string, fn func(el *Element)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[key]
	if !ok {
		el = &Element{}
		p.elements[key] = el
	}
	fn(el)
}

// SetURL moves the page without recording a navigation
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// Calls returns a copy of the recorded call log
func (p *Page) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// Count returns how many recorded calls equal call
func (p *Page) Count(call string) int {
	n := 0
	for _, c := range p.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Index returns the position of the first recorded call equal to call, or -1
func (p *Page) Index(call string) int {
	for i, c := range p.Calls() {
		if c == call {
			return i
		}
	}
	return -1
}

func (p *Page) record(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *Page) element(key string) (Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[key]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

func (p *Page) Goto(url string) error {
	p.record("goto %s", url)
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.SetURL(url)
	if p.OnGoto != nil {
		p.OnGoto(url)
	}
	return nil
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) GoBack() error {
	p.record("goback")
	if p.GoBackErr != nil {
		return p.GoBackErr
	}
	if p.OnGoBack != nil {
		p.OnGoBack()
	}
	return nil
}

func (p *Page) Locator(selector string, filters ...driver.Filter) driver.Locator {
	return &Locator{page: p, key: selector + filterSuffix(filters)}
}

func (p *Page) WaitForLoadState(state driver.LoadState) error {
	p.record("load %s", state)
	if p.OnLoadState != nil {
		p.OnLoadState(state)
	}
	return p.LoadStateErr
}

func (p *Page) WaitForSelector(selector string) error {
	p.record("selector %s", selector)
	return p.SelectorErr
}

func (p *Page) PressKey(key string) error {
	p.record("keyboard %s", key)
	if p.OnKey != nil {
		p.OnKey(key)
	}
	return nil
}

func (p *Page) Close() error {
	p.record("close")
	return nil
}

// Locator is the fake driver.Locator
type Locator struct {
	page *Page
	key  string
}

// Key returns the address of the locator
func (l *Locator) Key() string {
	return l.key
}

func (l *Locator) child(suffix string) *Locator {
	return &Locator{page: l.page, key: l.key + " >> " + suffix}
}

func (l *Locator) Locator(selector string, filters ...driver.Filter) driver.Locator {
	return l.child(selector + filterSuffix(filters))
}

func (l *Locator) First() driver.Locator {
	return l.child("first")
}

func (l *Locator) Last() driver.Locator {
	return l.child("last")
}

func (l *Locator) Nth(index int) driver.Locator {
	return l.child(fmt.Sprintf("nth=%d", index))
}

func (l *Locator) Click() error {
	l.page.record("click %s", l.key)
	el, _ := l.page.element(l.key)
	if el.ActionErr != nil {
		return el.ActionErr
	}
	if el.OnClick != nil {
		el.OnClick()
	}
	return nil
}

func (l *Locator) Fill(value string) error {
	l.page.record("fill %s = %s", l.key, value)
	el, _ := l.page.element(l.key)
	if el.ActionErr != nil {
		return el.ActionErr
	}
	if el.OnFill != nil {
		el.OnFill(value)
	}
	return nil
}

func (l *Locator) Press(key string) error {
	l.page.record("press %s %s", l.key, key)
	el, _ := l.page.element(l.key)
	if el.ActionErr != nil {
		return el.ActionErr
	}
	if el.OnPress != nil {
		el.OnPress(key)
	}
	return nil
}

func (l *Locator) ScrollIntoViewIfNeeded() error {
	l.page.record("scroll %s", l.key)
	el, _ := l.page.element(l.key)
	return el.ActionErr
}

func (l *Locator) WaitFor(state driver.ElementState, timeout time.Duration) error {
	if timeout > 0 {
		l.page.record("wait %s %s %s", l.key, state, timeout)
	} else {
		l.page.record("wait %s %s", l.key, state)
	}
	el, _ := l.page.element(l.key)
	if el.OnWait != nil {
		return el.OnWait(state, timeout)
	}
	return el.WaitErr
}

func (l *Locator) Count() (int, error) {
	el, _ := l.page.element(l.key)
	return el.Count, el.ReadErr
}

func (l *Locator) TextContent() (string, error) {
	el, _ := l.page.element(l.key)
	return el.Text, el.ReadErr
}

func (l *Locator) AllTextContents() ([]string, error) {
	el, _ := l.page.element(l.key)
	return append([]string(nil), el.Texts...), el.ReadErr
}

func (l *Locator) GetAttribute(name string) (string, error) {
	el, _ := l.page.element(l.key)
	return el.Attributes[name], el.ReadErr
}

// InputValue returns the element's Value
func (l *Locator) InputValue() (string, error) {
	el, _ := l.page.element(l.key)
	return el.Value, el.ReadErr
}

func (l *Locator) IsVisible() (bool, error) {
	el, _ := l.page.element(l.key)
	return el.Visible, el.ReadErr
}

func (l *Locator) Evaluate(expression string, arg any) (any, error) {
	l.page.record("evaluate %s", l.key)
	el, _ := l.page.element(l.key)
	return el.EvalResult, el.ReadErr
}

func filterSuffix(filters []driver.Filter) string {
	var b strings.Builder
	for _, f := range filters {
		if f.HasText != "" {
			b.WriteString("|text=" + f.HasText)
		}
		if f.HasPattern != nil {
			b.WriteString("|pattern=" + f.HasPattern.String())
		}
		if has, ok := f.Has.(*Locator); ok {
			b.WriteString("|has=(" + has.key + ")")
		}
	}
	return b.String()
}
