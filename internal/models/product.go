package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ProductDetails is the text scraped from one search result card
type ProductDetails struct {
	Title        string
	Price        string
	Brand        string
	Rating       string
	DeliveryDate string
}

// ParsePrice keeps the digits of a rendered price ("1 299 ₽" -> 1299).
// Text without digits parses as 0.
func ParsePrice(text string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0
	}
	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return price
}

// IsAscendingHead returns true when the first price is the minimum of all prices
func IsAscendingHead(prices []int) bool {
	if len(prices) == 0 {
		return false
	}
	for _, p := range prices[1:] {
		if p < prices[0] {
			return false
		}
	}
	return true
}

// Product is a catalog entry served by the fixture storefront.
// Prices are whole roubles; the site's URL filters use kopecks.
type Product struct {
	ID           int64
	Brand        string
	BrandID      int64
	Name         string
	Price        int64
	OldPrice     int64
	Rating       float64
	Reviews      int
	Sizes        []string
	Images       []string
	DeliveryDays int
	CreatedAt    time.Time
}

// FormattedPrice renders the price the way result cards show it
func (p Product) FormattedPrice() string {
	return FormatRoubles(p.Price)
}

// FormattedOldPrice renders the crossed-out price
func (p Product) FormattedOldPrice() string {
	return FormatRoubles(p.OldPrice)
}

// FormattedRating renders the rating with one decimal
func (p Product) FormattedRating() string {
	return strconv.FormatFloat(p.Rating, 'f', 1, 64)
}

// Article returns the article number shown on the product card
func (p Product) Article() string {
	return strconv.FormatInt(p.ID, 10)
}

// FormatRoubles groups thousands with a non-breaking space and appends the rouble sign
func FormatRoubles(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	return fmt.Sprintf("%s ₽", strings.Join(groups, " "))
}

// ErrProductNotFound is returned when no catalog product has the requested id
var ErrProductNotFound = errors.New("product not found")
