package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/models"
)

// minPlausiblePrice is the tolerance below which the first price is re-read;
// cards briefly render stale prices while filters apply.
const minPlausiblePrice = 1000

const firstPriceRetries = 3

// Text the site shows once a product lands in the basket
const (
	addedToBasketText = "Товар добавлен в корзину"
	inBasketText      = "В корзине"
)

var brandPattern = regexp.MustCompile(`(?i)Nike|Adidas|SPROX|GSD|KAPPA`)

var errPriceBelowTolerance = errors.New("price below tolerance")

// SearchPage drives the search box and the search results page
type SearchPage struct {
	*Navigator
	session *Session
	page    driver.Page

	SearchInput        driver.Locator
	SearchResults      driver.Locator
	SearchResultsList  driver.Locator
	FilterButtons      driver.Locator
	SortingButton      driver.Locator
	ResetFiltersButton driver.Locator
	ClearSearchButton  driver.Locator
	SearchButton       driver.Locator
}

// NewSearchPage binds the search page locators to session
func NewSearchPage(session *Session) *SearchPage {
	page := session.page
	return &SearchPage{
		Navigator:          NewNavigator(session),
		session:            session,
		page:               page,
		SearchInput:        page.Locator("#searchInput"),
		SearchResults:      page.Locator(".product-card-list .product-card"),
		SearchResultsList:  page.Locator(".product-card-list"),
		FilterButtons:      page.Locator(".dropdown-filter__btn"),
		SortingButton:      page.Locator(".dropdown-filter__btn--sorter"),
		ResetFiltersButton: page.Locator("button.reset-all-filters"),
		ClearSearchButton:  page.Locator("button.search-catalog__btn--clear"),
		SearchButton:       page.Locator("#applySearchBtn"),
	}
}

// Search submits query and waits until results and filters are rendered
func (p *SearchPage) Search(ctx context.Context, query string) error {
	before := p.page.URL()
	if err := p.SearchInput.Fill(query); err != nil {
		return fmt.Errorf("failed to fill search input: %w", err)
	}
	if err := p.SearchInput.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	if err := p.session.waitURLChange(ctx, before); err != nil {
		return err
	}
	if err := p.session.waitLoad(ctx, driver.LoadStateDOMContentLoaded); err != nil {
		return err
	}
	if err := p.waitForResults(ctx); err != nil {
		return err
	}
	if err := p.session.waitFor(ctx, p.FilterButtons.First(), driver.StateVisible, 0); err != nil {
		return fmt.Errorf("filters did not appear: %w", err)
	}

	return p.session.enter(models.ViewSearchResults)
}

// waitForResults waits for network idle and a visible results list
func (p *SearchPage) waitForResults(ctx context.Context) error {
	if err := p.session.networkIdle(ctx); err != nil {
		return err
	}
	if err := p.session.waitFor(ctx, p.SearchResultsList, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("search results did not appear: %w", err)
	}
	return nil
}

// OpenFiltersMenu opens the "all filters" panel
func (p *SearchPage) OpenFiltersMenu(ctx context.Context) error {
	if err := p.page.Locator("button", driver.Filter{HasText: "Все фильтры"}).Click(); err != nil {
		return fmt.Errorf("failed to open filters: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.WaitForSelector(".filters-desktop"); err != nil {
		return fmt.Errorf("filters panel did not open: %w", err)
	}
	return p.session.enter(models.ViewFilters)
}

// SetFilters fills the open filters panel, applies it and verifies the
// resulting URL. A URL that does not reflect opts is an error.
func (p *SearchPage) SetFilters(ctx context.Context, opts models.FilterOptions) error {
	if opts.Brand != "" {
		if err := p.selectBrand(opts.Brand); err != nil {
			return err
		}
	}

	if opts.PriceRange != nil {
		if err := opts.PriceRange.Validate(); err != nil {
			return err
		}
		if err := p.fillPriceRange(ctx, *opts.PriceRange); err != nil {
			return err
		}
	}

	showButton := p.page.Locator(".filters-desktop__btn-main.btn-main", driver.Filter{HasText: "Показать"})
	if err := p.session.waitFor(ctx, showButton, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("apply button did not appear: %w", err)
	}
	before := p.page.URL()
	if err := showButton.Click(); err != nil {
		return fmt.Errorf("failed to apply filters: %w", err)
	}

	if err := p.session.waitURLChange(ctx, before); err != nil {
		return err
	}
	if err := p.waitForResults(ctx); err != nil {
		return err
	}
	if err := p.session.enter(models.ViewSearchResults); err != nil {
		return err
	}

	return models.VerifyFilterURL(p.page.URL(), opts)
}

func (p *SearchPage) selectBrand(brand string) error {
	header := p.page.Locator(".filters-desktop__item-title", driver.Filter{HasText: "Бренд"})
	if err := header.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("failed to scroll to brand filter: %w", err)
	}

	checkbox := p.page.Locator(".checkbox-with-text", driver.Filter{
		Has: p.page.Locator(".checkbox-with-text__text", driver.Filter{HasText: brand}),
	})
	if err := checkbox.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("failed to scroll to brand %q: %w", brand, err)
	}
	if err := checkbox.Click(); err != nil {
		return fmt.Errorf("failed to select brand %q: %w", brand, err)
	}
	return nil
}

func (p *SearchPage) fillPriceRange(ctx context.Context, r models.PriceRange) error {
	section := p.page.Locator(".filters-desktop__item-title", driver.Filter{HasText: "Цена"})
	if err := section.ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("failed to scroll to price filter: %w", err)
	}

	inputs := p.page.Locator(".filter__price-input-search input.j-price")
	if err := replaceValue(inputs.Nth(0), r.Min); err != nil {
		return fmt.Errorf("failed to set min price: %w", err)
	}
	if err := replaceValue(inputs.Nth(1), r.Max); err != nil {
		return fmt.Errorf("failed to set max price: %w", err)
	}

	// Blur the inputs so the panel picks the values up
	if err := p.page.PressKey("Tab"); err != nil {
		return fmt.Errorf("failed to leave price input: %w", err)
	}
	return p.session.Pause(ctx, p.session.opts.FilterBlurDelay)
}

// replaceValue clears an input with select-all and backspace before typing
func replaceValue(input driver.Locator, value string) error {
	if err := input.Click(); err != nil {
		return err
	}
	if err := input.Press("Control+A"); err != nil {
		return err
	}
	if err := input.Press("Backspace"); err != nil {
		return err
	}
	return input.Fill(value)
}

// ApplyFilters opens the filters panel, sets opts and waits for the results to settle
func (p *SearchPage) ApplyFilters(ctx context.Context, opts models.FilterOptions) error {
	if err := p.OpenFiltersMenu(ctx); err != nil {
		return err
	}
	if err := p.SetFilters(ctx, opts); err != nil {
		return err
	}
	return p.session.networkIdle(ctx)
}

// ApplySorting picks sortType from the sorter dropdown
func (p *SearchPage) ApplySorting(ctx context.Context, sortType models.SortType) error {
	if !sortType.IsValid() {
		return fmt.Errorf("unknown sort type %q", sortType)
	}

	if err := p.session.waitFor(ctx, p.SortingButton, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("sorter did not appear: %w", err)
	}
	before := p.page.URL()
	if err := p.SortingButton.Click(); err != nil {
		return fmt.Errorf("failed to open sorter: %w", err)
	}

	option := p.page.Locator(".sort-item", driver.Filter{HasText: sortType.Label()})
	if err := p.session.waitFor(ctx, option, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("sort option %q did not appear: %w", sortType.Label(), err)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("failed to pick sort option %q: %w", sortType.Label(), err)
	}

	if err := p.waitForSortNavigation(ctx, before, sortType); err != nil {
		return err
	}
	if err := p.waitForResults(ctx); err != nil {
		return err
	}
	if sortType == models.SortPriceAsc {
		return p.waitForAscendingPrices(ctx)
	}
	return nil
}

// SortBy picks the sort option with the visible label. Ascending price
// returns once the first listed price is the lowest one.
func (p *SearchPage) SortBy(ctx context.Context, label string) error {
	sortType, err := models.SortTypeFromLabel(label)
	if err != nil {
		return err
	}

	before := p.page.URL()
	if err := p.SortingButton.Click(); err != nil {
		return fmt.Errorf("failed to open sorter: %w", err)
	}
	if err := p.page.Locator(".filter__item", driver.Filter{HasText: label}).Click(); err != nil {
		return fmt.Errorf("failed to pick sort option %q: %w", label, err)
	}
	if err := p.waitForSortNavigation(ctx, before, sortType); err != nil {
		return err
	}
	if err := p.session.networkIdle(ctx); err != nil {
		return err
	}

	if sortType == models.SortPriceAsc {
		return p.waitForAscendingPrices(ctx)
	}
	return nil
}

// waitForSortNavigation waits for the reload a sort option starts. Picking
// the order the URL already carries may not navigate at all.
func (p *SearchPage) waitForSortNavigation(ctx context.Context, before string, sortType models.SortType) error {
	u, err := url.Parse(before)
	if err == nil && models.SortTypeFromParam(u.Query().Get("sort")) == sortType {
		return nil
	}
	return p.session.waitURLChange(ctx, before)
}

func (p *SearchPage) waitForAscendingPrices(ctx context.Context) error {
	prices := p.page.Locator(".price__lower-price")
	return p.session.poll(ctx, "ascending price order", func() (bool, error) {
		texts, err := prices.AllTextContents()
		if err != nil {
			return false, fmt.Errorf("failed to read prices: %w", err)
		}
		values := make([]int, len(texts))
		for i, text := range texts {
			values[i] = models.ParsePrice(text)
		}
		return models.IsAscendingHead(values), nil
	})
}

// ResultsCount returns the number of rendered result cards
func (p *SearchPage) ResultsCount(ctx context.Context) (int, error) {
	if err := p.session.waitFor(ctx, p.SearchResultsList, driver.StateVisible, 0); err != nil {
		return 0, fmt.Errorf("search results did not appear: %w", err)
	}
	count, err := p.SearchResults.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

// FirstProductPrice reads the price of the first card. Prices under the
// tolerance are re-read a few times; the last read is returned regardless.
func (p *SearchPage) FirstProductPrice(ctx context.Context) (int, error) {
	if err := p.waitForResults(ctx); err != nil {
		return 0, err
	}

	priceElement := p.SearchResults.First().Locator(".price__lower-price")
	if err := p.session.waitFor(ctx, priceElement, driver.StateVisible, 0); err != nil {
		return 0, fmt.Errorf("first price did not appear: %w", err)
	}

	var price int
	backoff := retry.WithMaxRetries(firstPriceRetries, retry.NewConstant(p.session.opts.PriceRetryInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := priceElement.TextContent()
		if err != nil {
			return fmt.Errorf("failed to read first price: %w", err)
		}
		price = models.ParsePrice(text)
		if price < minPlausiblePrice {
			return retry.RetryableError(errPriceBelowTolerance)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errPriceBelowTolerance) {
		return 0, err
	}
	return price, nil
}

// AppliedFilters returns the labels of the filter buttons marked selected
func (p *SearchPage) AppliedFilters(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.page.Locator(".dropdown-filter__btn--selected").AllTextContents()
}

// IsFilterApplied reports whether filter name shows value, either as a
// filter tag or as a selected filter button, with at least one result.
// Any failure is logged and reported as false.
func (p *SearchPage) IsFilterApplied(ctx context.Context, name, value string) bool {
	if err := p.session.networkIdle(ctx); err != nil {
		log.Printf("Warning: failed to check filter %s=%s: %v", name, value, err)
		return false
	}

	tag := p.page.Locator(".filter-tags__item", driver.Filter{HasText: value})
	button := p.page.Locator(".dropdown-filter__btn", driver.Filter{HasText: name})

	var (
		hasTag  bool
		classes string
		g       errgroup.Group
	)
	g.Go(func() error {
		count, err := tag.Count()
		hasTag = count > 0
		return err
	})
	g.Go(func() error {
		var err error
		classes, err = button.First().GetAttribute("class")
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("Warning: failed to check filter %s=%s: %v", name, value, err)
		return false
	}

	if !hasTag && !strings.Contains(classes, "selected") {
		return false
	}

	count, err := p.ResultsCount(ctx)
	if err != nil {
		log.Printf("Warning: failed to check filter %s=%s: %v", name, value, err)
		return false
	}
	return count > 0
}

// ProductDetails scrapes the result card at index
func (p *SearchPage) ProductDetails(ctx context.Context, index int) (models.ProductDetails, error) {
	product := p.SearchResults.Nth(index)
	if err := p.session.waitFor(ctx, product, driver.StateVisible, 0); err != nil {
		return models.ProductDetails{}, fmt.Errorf("result %d did not appear: %w", index, err)
	}

	// Card markup varies; a missing brand link is not an error
	brand, err := product.Locator("a", driver.Filter{HasPattern: brandPattern}).First().TextContent()
	if err != nil {
		brand = ""
	}

	var details models.ProductDetails
	fields := []struct {
		selector string
		dst      *string
	}{
		{".product-card__name", &details.Title},
		{".price__lower-price", &details.Price},
		{".product-card__rating span", &details.Rating},
		{".product-card__delivery-date", &details.DeliveryDate},
	}
	for _, f := range fields {
		text, err := product.Locator(f.selector).TextContent()
		if err != nil {
			return models.ProductDetails{}, fmt.Errorf("failed to read %s of result %d: %w", f.selector, index, err)
		}
		*f.dst = strings.TrimSpace(text)
	}
	details.Brand = strings.TrimSpace(brand)

	return details, nil
}

// IsProductImageLoaded reports whether the image of the card at index finished loading
func (p *SearchPage) IsProductImageLoaded(ctx context.Context, index int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	image := p.SearchResults.Nth(index).Locator("img")
	result, err := image.Evaluate("img => img.complete && img.naturalHeight !== 0", nil)
	if err != nil {
		return false, fmt.Errorf("failed to inspect image of result %d: %w", index, err)
	}
	loaded, _ := result.(bool)
	return loaded, nil
}

// GoToNextPage follows the pagination "next" link
func (p *SearchPage) GoToNextPage(ctx context.Context) error {
	before := p.page.URL()
	if err := p.page.Locator(".pagination-next.pagination__next").Click(); err != nil {
		return fmt.Errorf("failed to open next page: %w", err)
	}
	if err := p.session.waitURLChange(ctx, before); err != nil {
		return err
	}
	return p.waitForResults(ctx)
}

// CurrentPage returns the active pagination number
func (p *SearchPage) CurrentPage(ctx context.Context) (int, error) {
	current := p.page.Locator(".pagination__item.pagination-item--active")
	if err := p.session.waitFor(ctx, current, driver.StateVisible, 0); err != nil {
		return 0, fmt.Errorf("pagination did not appear: %w", err)
	}
	text, err := current.TextContent()
	if err != nil {
		return 0, fmt.Errorf("failed to read current page: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("unexpected page number %q: %w", text, err)
	}
	return page, nil
}

// SearchParams returns the query parameters of the current URL
func (p *SearchPage) SearchParams() (url.Values, error) {
	u, err := url.Parse(p.page.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse current URL: %w", err)
	}
	return u.Query(), nil
}

// VerifyFilterInURL reports whether query parameter name equals value
func (p *SearchPage) VerifyFilterInURL(name, value string) (bool, error) {
	params, err := p.SearchParams()
	if err != nil {
		return false, err
	}
	return params.Get(name) == value, nil
}

// AddFirstProductToCart adds the first result in its first available size.
// The confirmation is best effort: when neither signal shows up in time the
// miss is logged and nil is returned.
func (p *SearchPage) AddFirstProductToCart(ctx context.Context) error {
	addButton := p.SearchResults.First().Locator(".product-card__add-basket")
	if err := p.session.waitFor(ctx, addButton, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("add to basket button did not appear: %w", err)
	}
	if err := addButton.Click(); err != nil {
		return fmt.Errorf("failed to click add to basket: %w", err)
	}

	sizePopup := p.page.Locator(".popup-list-of-sizes")
	if err := p.session.waitFor(ctx, sizePopup, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("size popup did not appear: %w", err)
	}
	if err := sizePopup.Locator(".sizes-list__button:not(.disabled)").First().Click(); err != nil {
		return fmt.Errorf("failed to pick a size: %w", err)
	}

	winner := p.session.firstVisible(ctx, p.session.opts.ConfirmTimeout,
		p.page.Locator(fmt.Sprintf("text=%q", addedToBasketText)),
		p.page.Locator(".product-card__add-basket", driver.Filter{HasText: inBasketText}),
	)
	if winner < 0 {
		log.Printf("Warning: adding the first product to the basket was not confirmed")
	}
	return nil
}

// ResetFilters clears every applied filter
func (p *SearchPage) ResetFilters(ctx context.Context) error {
	if err := p.ResetFiltersButton.Click(); err != nil {
		return fmt.Errorf("failed to reset filters: %w", err)
	}
	return p.session.Pause(ctx, p.session.opts.ResetDelay)
}

// ClearAndSearch replaces the query with an article number. The site may
// answer with the product card itself instead of a results list.
func (p *SearchPage) ClearAndSearch(ctx context.Context, article string) error {
	before := p.page.URL()
	if err := p.ClearSearchButton.Click(); err != nil {
		return fmt.Errorf("failed to clear search: %w", err)
	}
	if err := p.SearchInput.Fill(article); err != nil {
		return fmt.Errorf("failed to fill search input: %w", err)
	}
	if err := p.SearchInput.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}
	return p.session.followNavigation(ctx, before)
}

// OpenResult opens the product card of the result at index
func (p *SearchPage) OpenResult(ctx context.Context, index int) error {
	before := p.page.URL()
	if err := p.SearchResults.Nth(index).Click(); err != nil {
		return fmt.Errorf("failed to open result %d: %w", index, err)
	}
	return p.session.followNavigation(ctx, before)
}
