package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// View identifies which logical page the shared browser tab is showing
type View string

// Views
const (
	ViewUnknown       View = "unknown"
	ViewHome          View = "home"
	ViewSearchResults View = "search_results"
	ViewFilters       View = "filters"
	ViewProduct       View = "product"
	ViewReviews       View = "reviews"
	ViewBasket        View = "basket"
	ViewEmptyBasket   View = "empty_basket"
)

// ErrInvalidViewTransition is returned when an action would leave the tab in a view it cannot reach
var ErrInvalidViewTransition = errors.New("invalid view transition")

// viewTransitions lists, per view, the views an action may move to.
// Every view can fall back to a fresh navigation (home, search, product, basket).
var viewTransitions = map[View][]View{
	ViewHome:          {ViewHome, ViewSearchResults, ViewProduct, ViewBasket, ViewEmptyBasket},
	ViewSearchResults: {ViewSearchResults, ViewFilters, ViewProduct, ViewHome, ViewBasket, ViewEmptyBasket},
	ViewFilters:       {ViewSearchResults, ViewFilters},
	ViewProduct:       {ViewProduct, ViewReviews, ViewSearchResults, ViewHome, ViewBasket, ViewEmptyBasket},
	ViewReviews:       {ViewReviews, ViewProduct},
	ViewBasket:        {ViewBasket, ViewEmptyBasket, ViewHome, ViewProduct, ViewSearchResults},
	ViewEmptyBasket:   {ViewEmptyBasket, ViewHome, ViewSearchResults, ViewProduct},
}

// CanTransitionTo reports whether an action may move the tab from v to next.
// Nothing is enforced to or from an unrecognised page.
func (v View) CanTransitionTo(next View) bool {
	if v == ViewUnknown || next == ViewUnknown {
		return true
	}
	for _, allowed := range viewTransitions[v] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates the move from v to next and returns next
func (v View) Transition(next View) (View, error) {
	if !v.CanTransitionTo(next) {
		return v, fmt.Errorf("%w: %s -> %s", ErrInvalidViewTransition, v, next)
	}
	return next, nil
}

// ViewFromURL derives the view a URL renders. Overlays that do not change
// the URL (filters panel, reviews pane, empty basket) are never returned.
func ViewFromURL(raw string) View {
	u, err := url.Parse(raw)
	if err != nil {
		return ViewUnknown
	}

	path := strings.TrimSuffix(u.Path, "/")
	switch {
	case path == "":
		return ViewHome
	case strings.HasSuffix(path, "/detail.aspx"):
		return ViewProduct
	case strings.HasPrefix(path, "/lk/basket"):
		return ViewBasket
	case strings.HasPrefix(path, "/catalog"):
		return ViewSearchResults
	default:
		return ViewUnknown
	}
}
