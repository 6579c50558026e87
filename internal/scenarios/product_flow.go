package scenarios

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/shopflow/internal/models"
)

// ProductFlowName names the product flow suite in reports
const ProductFlowName = "Product Flow"

// Inputs of the product flow
const (
	SearchQuery   = "кроссовки"
	FilterBrand   = "Nike"
	FilterMinimum = "1000"
	FilterMaximum = "3000"
)

// ErrNoArticle is returned when the opened product shows no article number
var ErrNoArticle = errors.New("product has no article number")

// ProductFlow returns the product flow journeys in the order they must run
func ProductFlow() []Scenario {
	return []Scenario{
		{Name: "search and add first product to cart", Run: searchAndAddFirstProduct},
		{Name: "check second product details and add to cart", Run: checkSecondProduct},
		{Name: "manage products in basket", Run: manageBasket},
	}
}

// searchAndAddFirstProduct searches, narrows and sorts the results, puts
// the cheapest product in the basket, then finds the second result again
// by its article number.
func searchAndAddFirstProduct(ctx context.Context, s *Suite) error {
	if err := s.Search.Goto(ctx, "/"); err != nil {
		return err
	}
	if err := s.Search.Search(ctx, SearchQuery); err != nil {
		return err
	}

	filters := models.FilterOptions{
		Brand:      FilterBrand,
		PriceRange: &models.PriceRange{Min: FilterMinimum, Max: FilterMaximum},
	}
	if err := s.Search.ApplyFilters(ctx, filters); err != nil {
		return err
	}
	if err := s.Search.SortBy(ctx, models.SortPriceAsc.Label()); err != nil {
		return err
	}
	if err := s.Search.AddFirstProductToCart(ctx); err != nil {
		return err
	}

	if err := s.Search.OpenResult(ctx, 1); err != nil {
		return err
	}
	article, err := s.Product.ArticleNumber(ctx)
	if err != nil {
		return err
	}
	if article == "" {
		return ErrNoArticle
	}
	s.Article = article

	if err := s.Product.GoBack(ctx); err != nil {
		return err
	}
	if err := s.Search.ResetFilters(ctx); err != nil {
		return err
	}
	return s.Search.ClearAndSearch(ctx, article)
}

// checkSecondProduct looks through the product found by article and adds it
func checkSecondProduct(ctx context.Context, s *Suite) error {
	if view := s.Session.View(); view != models.ViewProduct {
		return fmt.Errorf("expected the product card to be open, tab shows %s", view)
	}
	if err := s.Product.BrowseProductImages(ctx, 3, s.Pauses.ImageDelay); err != nil {
		return err
	}
	if err := s.Product.CheckReviews(ctx, s.Pauses.ReviewDelay); err != nil {
		return err
	}
	return s.Product.AddToCart(ctx)
}

// manageBasket empties the basket one change at a time and returns home
func manageBasket(ctx context.Context, s *Suite) error {
	steps := []struct {
		do    func(context.Context) error
		pause time.Duration
	}{
		{s.Basket.OpenBasket, 0},
		{s.Basket.DeleteSecondProduct, s.Pauses.AfterDelete},
		{s.Basket.IncreaseFirstProductQuantity, s.Pauses.AfterIncrease},
		{s.Basket.DecreaseFirstProductQuantity, s.Pauses.AfterDecrease},
		{s.Basket.DeleteFirstProduct, 0},
		{s.Basket.ReturnToMain, 0},
	}
	for _, step := range steps {
		if err := step.do(ctx); err != nil {
			return err
		}
		if err := s.Session.Pause(ctx, step.pause); err != nil {
			return err
		}
	}
	return nil
}
