//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/pages"
)

// TestSearchFilters checks the filters panel against the fixture storefront
// Feature: Search filters
//
//	As a shopper
//	I want to narrow the results by brand and price
//	So that I only see what I can afford
func TestSearchFilters(t *testing.T) {
	ctx := context.Background()
	session, _ := newSession(t)
	search := pages.NewSearchPage(session)

	// Given I searched for sneakers
	require.NoError(t, search.Goto(ctx, "/"))
	require.NoError(t, search.Search(ctx, "кроссовки"))
	require.Equal(t, models.ViewSearchResults, session.View())

	// When I keep Nike between 1000 and 3000 roubles
	require.NoError(t, search.ApplyFilters(ctx, models.FilterOptions{
		Brand:      "Nike",
		PriceRange: &models.PriceRange{Min: "1000", Max: "3000"},
	}))

	// Then the URL carries both filters
	params, err := search.SearchParams()
	require.NoError(t, err)
	require.Equal(t, "671", params.Get("fbrand"))
	require.Equal(t, "100000;300000", params.Get("priceU"))
	require.True(t, search.IsFilterApplied(ctx, "Бренд", "Nike"))

	// And sorting by ascending price lists the cheapest first
	require.NoError(t, search.SortBy(ctx, models.SortPriceAsc.Label()))
	price, err := search.FirstProductPrice(ctx)
	require.NoError(t, err)
	require.Equal(t, 1490, price)

	details, err := search.ProductDetails(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Nike", details.Brand)
	require.NotEmpty(t, details.DeliveryDate)
}

// TestArticleSearch checks that an article number lands on its product card
// Feature: Article search
//
//	As a shopper
//	I want to type an article number into the search box
//	So that I get straight to that product
func TestArticleSearch(t *testing.T) {
	ctx := context.Background()
	session, page := newSession(t)
	search := pages.NewSearchPage(session)
	product := pages.NewProductPage(session)

	require.NoError(t, search.Goto(ctx, "/"))
	require.NoError(t, search.ClearAndSearch(ctx, "146972802"))

	require.Equal(t, models.ViewProduct, session.View())
	u, err := url.Parse(page.URL())
	require.NoError(t, err)
	require.Equal(t, "/catalog/146972802/detail.aspx", u.Path)

	article, err := product.ArticleNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "146972802", article)

	brand, err := product.Brand(ctx)
	require.NoError(t, err)
	require.Equal(t, "Nike", brand)
}

// TestSearchNoResults checks that an empty result set counts as zero cards
// Feature: Empty search
//
//	As a shopper
//	I want a search without matches to say so
//	So that I know to try other words
func TestSearchNoResults(t *testing.T) {
	ctx := context.Background()
	session, _ := newSession(t)
	search := pages.NewSearchPage(session)

	// Given I am on the home page
	require.NoError(t, search.Goto(ctx, "/"))

	// When I search for something the catalog does not sell
	require.NoError(t, search.Search(ctx, "пылесос"))

	// Then no result cards are rendered
	count, err := search.ResultsCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
