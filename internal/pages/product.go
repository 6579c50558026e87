package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/themizzi/shopflow/internal/driver"
	"github.com/themizzi/shopflow/internal/models"
)

// ProductPage drives a product card
type ProductPage struct {
	*Navigator
	session *Session
	page    driver.Page

	ProductBrand        driver.Locator
	ProductTitle        driver.Locator
	ProductRating       driver.Locator
	ProductReviewsCount driver.Locator
	PriceWithWallet     driver.Locator
	PriceRegular        driver.Locator
	PriceOld            driver.Locator
	AddToCartButton     driver.Locator
	SizeSelector        driver.Locator
	ProductImages       driver.Locator
	NextImageButton     driver.Locator
	MainImage           driver.Locator
	SizePopup           driver.Locator
	FirstAvailableSize  driver.Locator
	AddToCartSuccess    driver.Locator
	ArticleNumberLabel  driver.Locator
	BackButton          driver.Locator
}

// NewProductPage binds the product card locators to session
func NewProductPage(session *Session) *ProductPage {
	page := session.page
	return &ProductPage{
		Navigator:           NewNavigator(session),
		session:             session,
		page:                page,
		ProductBrand:        page.Locator("span.product-page__brand"),
		ProductTitle:        page.Locator("h1.product-page__title"),
		ProductRating:       page.Locator(".address-rate-mini--sm"),
		ProductReviewsCount: page.Locator(".product-review"),
		PriceWithWallet:     page.Locator(".price-block__wallet-price"),
		PriceRegular:        page.Locator(".price-block__final-price"),
		PriceOld:            page.Locator(".price-block__old-price"),
		AddToCartButton:     page.Locator(".product-page__order-buttons button.order__button.btn-main").First(),
		SizeSelector:        page.Locator(".sizes-list__button:not(.disabled)"),
		ProductImages:       page.Locator(".swiper-wrapper .slide__content img"),
		NextImageButton:     page.Locator("button.mix-block__slider-btn.mix-block__slider-btn--next"),
		MainImage:           page.Locator(".photo-zoom__preview"),
		SizePopup:           page.Locator(".popup.popup-list-of-sizes"),
		FirstAvailableSize:  page.Locator(".sizes-list__button:not(.disabled)").First(),
		AddToCartSuccess:    page.Locator(".product-page__order-buttons .j-go-to-basket").First(),
		ArticleNumberLabel:  page.Locator("#productNmId"),
		BackButton:          page.Locator("button.breadcrumbs__back"),
	}
}

// AddToCart adds the product in its first available size and waits for the "go to basket" button
func (p *ProductPage) AddToCart(ctx context.Context) error {
	if err := p.AddToCartButton.Click(); err != nil {
		return fmt.Errorf("failed to click add to basket: %w", err)
	}
	if err := p.session.waitFor(ctx, p.SizePopup, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("size popup did not appear: %w", err)
	}
	if err := p.FirstAvailableSize.Click(); err != nil {
		return fmt.Errorf("failed to pick a size: %w", err)
	}
	if err := p.session.waitFor(ctx, p.AddToCartSuccess, driver.StateVisible, p.session.opts.ConfirmTimeout); err != nil {
		return fmt.Errorf("product was not added to basket: %w", err)
	}
	return nil
}

// BrowseProductImages flips the gallery count times, pausing delay before each flip
func (p *ProductPage) BrowseProductImages(ctx context.Context, count int, delay time.Duration) error {
	for i := 0; i < count; i++ {
		if err := p.session.Pause(ctx, delay); err != nil {
			return err
		}
		if err := p.NextImageButton.Click(); err != nil {
			return fmt.Errorf("failed to open image %d: %w", i+2, err)
		}
	}
	return nil
}

// CheckReviews opens the reviews, sorts them by rating, lingers for delay and comes back
func (p *ProductPage) CheckReviews(ctx context.Context, delay time.Duration) error {
	if err := p.ProductReviewsCount.Click(); err != nil {
		return fmt.Errorf("failed to open reviews: %w", err)
	}

	loader := p.page.Locator(".general-preloader")
	if err := p.session.waitFor(ctx, loader, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("reviews loader did not appear: %w", err)
	}
	if err := p.session.waitFor(ctx, loader, driver.StateHidden, p.session.opts.LoaderTimeout); err != nil {
		return fmt.Errorf("reviews did not finish loading: %w", err)
	}
	if err := p.session.enter(models.ViewReviews); err != nil {
		return err
	}

	sortByRating := p.page.Locator(".sorting__list li:nth-child(2) a")
	if err := p.session.waitFor(ctx, sortByRating, driver.StateVisible, 0); err != nil {
		return fmt.Errorf("reviews sorting did not appear: %w", err)
	}
	if err := sortByRating.Click(); err != nil {
		return fmt.Errorf("failed to sort reviews: %w", err)
	}
	if err := p.session.networkIdle(ctx); err != nil {
		return err
	}

	if err := p.session.Pause(ctx, delay); err != nil {
		return err
	}

	if err := p.page.Locator(".product-feedbacks__back").Click(); err != nil {
		return fmt.Errorf("failed to leave reviews: %w", err)
	}
	if err := p.session.networkIdle(ctx); err != nil {
		return err
	}
	return p.session.enter(models.ViewProduct)
}

// ArticleNumber returns the trimmed article number, or "" when the card has none
func (p *ProductPage) ArticleNumber(ctx context.Context) (string, error) {
	err := p.session.waitFor(ctx, p.ArticleNumberLabel, driver.StateAttached, 0)
	if errors.Is(err, driver.ErrTimeout) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find article number: %w", err)
	}

	article, err := p.ArticleNumberLabel.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read article number: %w", err)
	}
	return strings.TrimSpace(article), nil
}

// Title returns the product title
func (p *ProductPage) Title(ctx context.Context) (string, error) {
	return p.readText(ctx, p.ProductTitle, "title")
}

// Brand returns the product brand
func (p *ProductPage) Brand(ctx context.Context) (string, error) {
	return p.readText(ctx, p.ProductBrand, "brand")
}

func (p *ProductPage) readText(ctx context.Context, loc driver.Locator, what string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read product %s: %w", what, err)
	}
	return strings.TrimSpace(text), nil
}

// GoBack returns to the previous page through the breadcrumbs
func (p *ProductPage) GoBack(ctx context.Context) error {
	before := p.page.URL()
	if err := p.BackButton.Click(); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}
	return p.session.followNavigation(ctx, before)
}
