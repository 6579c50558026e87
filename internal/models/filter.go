package models

import (
	"errors"
	"fmt"
	"strings"
)

// Filter verification messages, matched verbatim by callers
const (
	MsgPriceFilterNotApplied = "Price range filter was not applied correctly"
	MsgBrandFilterNotApplied = "Brand filter was not applied correctly"
)

// ErrFilterNotApplied wraps every failed post-filter URL check
var ErrFilterNotApplied = errors.New("filter not applied")

// PriceRange is an inclusive price window typed as the user would type it
type PriceRange struct {
	Min string
	Max string
}

// FilterOptions are the search-result filters applied in one call
type FilterOptions struct {
	Brand      string
	PriceRange *PriceRange
}

// IsEmpty returns true when no filter is requested
func (f FilterOptions) IsEmpty() bool {
	return f.Brand == "" && f.PriceRange == nil
}

// filterError keeps the exact message while matching ErrFilterNotApplied
type filterError struct {
	msg string
}

func (e *filterError) Error() string        { return e.msg }
func (e *filterError) Is(target error) bool { return target == ErrFilterNotApplied }

// VerifyFilterURL checks that the URL the site settled on reflects opts.
// The price check runs first, matching the order filters are applied in.
func VerifyFilterURL(currentURL string, opts FilterOptions) error {
	if opts.PriceRange != nil {
		applied := strings.Contains(currentURL, "priceU=") &&
			strings.Contains(currentURL, opts.PriceRange.Min) &&
			strings.Contains(currentURL, opts.PriceRange.Max)
		if !applied {
			return &filterError{msg: MsgPriceFilterNotApplied}
		}
	}
	if opts.Brand != "" {
		applied := strings.Contains(currentURL, "fbrand=") || strings.Contains(currentURL, "brand=")
		if !applied {
			return &filterError{msg: MsgBrandFilterNotApplied}
		}
	}
	return nil
}

// Validate rejects a price range that is empty on either end
func (r PriceRange) Validate() error {
	if r.Min == "" || r.Max == "" {
		return fmt.Errorf("price range needs both min and max, got %q-%q", r.Min, r.Max)
	}
	return nil
}
