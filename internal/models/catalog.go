package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CatalogPageSize is the number of cards on one results page
const CatalogPageSize = 12

// CatalogQuery is a parsed search results URL
type CatalogQuery struct {
	Search   string
	BrandIDs []int64
	// MinPrice and MaxPrice are whole roubles; zero leaves that end open
	MinPrice int64
	MaxPrice int64
	Sort     SortType
	Page     int
}

// ParseCatalogQuery reads the query parameters of a search results URL.
// Prices arrive as priceU=<min kopecks>;<max kopecks> and brands as
// fbrand=<id>;<id>.
func ParseCatalogQuery(values url.Values) (CatalogQuery, error) {
	q := CatalogQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   SortTypeFromParam(values.Get("sort")),
		Page:   1,
	}

	if raw := values.Get("fbrand"); raw != "" {
		for _, part := range strings.Split(raw, ";") {
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return q, fmt.Errorf("invalid brand id %q: %w", part, err)
			}
			q.BrandIDs = append(q.BrandIDs, id)
		}
	}

	if raw := values.Get("priceU"); raw != "" {
		parts := strings.Split(raw, ";")
		if len(parts) != 2 {
			return q, fmt.Errorf("invalid price range %q", raw)
		}
		lo, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid minimum price %q: %w", parts[0], err)
		}
		hi, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid maximum price %q: %w", parts[1], err)
		}
		if hi != 0 && hi < lo {
			return q, fmt.Errorf("invalid price range %q: maximum below minimum", raw)
		}
		q.MinPrice, q.MaxPrice = lo/100, hi/100
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = page
	}

	return q, nil
}

// HasPriceRange returns true when either end of the price range is set
func (q CatalogQuery) HasPriceRange() bool {
	return q.MinPrice > 0 || q.MaxPrice > 0
}

// HasBrand returns true when id is among the selected brands
func (q CatalogQuery) HasBrand(id int64) bool {
	for _, b := range q.BrandIDs {
		if b == id {
			return true
		}
	}
	return false
}

// Values renders q back into query parameters. Defaults are omitted.
func (q CatalogQuery) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if len(q.BrandIDs) > 0 {
		ids := make([]string, len(q.BrandIDs))
		for i, id := range q.BrandIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		values.Set("fbrand", strings.Join(ids, ";"))
	}
	if q.HasPriceRange() {
		values.Set("priceU", fmt.Sprintf("%d;%d", q.MinPrice*100, q.MaxPrice*100))
	}
	if q.Sort != "" && q.Sort != SortPopular {
		values.Set("sort", q.Sort.Param())
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	return values
}

// IsArticle returns true when the search text is an article number
func (q CatalogQuery) IsArticle() (int64, bool) {
	if q.Search == "" {
		return 0, false
	}
	for _, r := range q.Search {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(q.Search, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// BrandFacet is one brand offered in the filters panel
type BrandFacet struct {
	ID       int64
	Name     string
	Count    int
	Selected bool
}

// CatalogPage is one page of search results
type CatalogPage struct {
	Query    CatalogQuery
	Products []Product
	Brands   []BrandFacet
	Total    int
	Pages    int
}

// HasNext returns true when a further results page exists
func (p *CatalogPage) HasNext() bool {
	return p.Query.Page < p.Pages
}
