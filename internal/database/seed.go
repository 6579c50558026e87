package database

import (
	"time"

	"github.com/themizzi/shopflow/internal/models"
)

// Brand ids as the storefront's brand filter knows them
const (
	BrandNike   int64 = 671
	BrandAdidas int64 = 21
	BrandPuma   int64 = 1083
	BrandKappa  int64 = 10145
	BrandSprox  int64 = 12680
	BrandGSD    int64 = 310345
)

var seedEpoch = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

// SeedProducts returns the fixture catalog. Several Nike sneakers fall in
// the 1000-3000 rouble window so the product flow finds at least two.
func SeedProducts() []models.Product {
	shoeSizes := []string{"39", "40", "41", "42", "43", "44"}
	apparelSizes := []string{"S", "M", "L", "XL"}

	products := []models.Product{
		{ID: 146972802, Brand: "Nike", BrandID: BrandNike, Name: "Кроссовки Air Zoom Pegasus", Price: 2890, OldPrice: 5990, Rating: 4.8, Reviews: 1240, Sizes: shoeSizes, DeliveryDays: 1},
		{ID: 146972815, Brand: "Nike", BrandID: BrandNike, Name: "Кроссовки Court Vision Low", Price: 1490, OldPrice: 3290, Rating: 4.6, Reviews: 872, Sizes: shoeSizes, DeliveryDays: 2},
		{ID: 146972833, Brand: "Nike", BrandID: BrandNike, Name: "Кроссовки Revolution 6", Price: 2190, OldPrice: 4490, Rating: 4.7, Reviews: 2311, Sizes: shoeSizes, DeliveryDays: 1},
		{ID: 146972841, Brand: "Nike", BrandID: BrandNike, Name: "Кроссовки Air Max 90", Price: 8990, OldPrice: 12990, Rating: 4.9, Reviews: 654, Sizes: shoeSizes, DeliveryDays: 3},
		{ID: 146972856, Brand: "Nike", BrandID: BrandNike, Name: "Кроссовки Downshifter 12", Price: 990, OldPrice: 2490, Rating: 4.3, Reviews: 198, Sizes: []string{"40", "41"}, DeliveryDays: 2},
		{ID: 146972860, Brand: "Nike", BrandID: BrandNike, Name: "Футболка Dri-FIT Park", Price: 1290, OldPrice: 1990, Rating: 4.5, Reviews: 421, Sizes: apparelSizes, DeliveryDays: 1},
		{ID: 158310004, Brand: "Adidas", BrandID: BrandAdidas, Name: "Кроссовки Runfalcon 3.0", Price: 2590, OldPrice: 4990, Rating: 4.7, Reviews: 1502, Sizes: shoeSizes, DeliveryDays: 1},
		{ID: 158310017, Brand: "Adidas", BrandID: BrandAdidas, Name: "Кроссовки Grand Court", Price: 3490, OldPrice: 5490, Rating: 4.6, Reviews: 733, Sizes: shoeSizes, DeliveryDays: 2},
		{ID: 158310029, Brand: "Adidas", BrandID: BrandAdidas, Name: "Кеды Advantage", Price: 2790, OldPrice: 3990, Rating: 4.4, Reviews: 389, Sizes: shoeSizes, DeliveryDays: 4},
		{ID: 167420113, Brand: "Puma", BrandID: BrandPuma, Name: "Кроссовки Smash v2", Price: 1990, OldPrice: 3990, Rating: 4.5, Reviews: 947, Sizes: shoeSizes, DeliveryDays: 2},
		{ID: 167420128, Brand: "Puma", BrandID: BrandPuma, Name: "Кроссовки Caven 2.0", Price: 3290, OldPrice: 5990, Rating: 4.6, Reviews: 512, Sizes: shoeSizes, DeliveryDays: 3},
		{ID: 171530207, Brand: "KAPPA", BrandID: BrandKappa, Name: "Кроссовки Authentic Run", Price: 1790, OldPrice: 2990, Rating: 4.2, Reviews: 143, Sizes: shoeSizes, DeliveryDays: 5},
		{ID: 178640311, Brand: "SPROX", BrandID: BrandSprox, Name: "Кроссовки беговые сетка", Price: 1190, OldPrice: 2190, Rating: 4.1, Reviews: 2750, Sizes: shoeSizes, DeliveryDays: 2},
		{ID: 178640326, Brand: "SPROX", BrandID: BrandSprox, Name: "Кроссовки зимние утепленные", Price: 2390, OldPrice: 3890, Rating: 4.3, Reviews: 961, Sizes: shoeSizes, DeliveryDays: 3},
		{ID: 189750418, Brand: "GSD", BrandID: BrandGSD, Name: "Кроссовки повседневные", Price: 1590, OldPrice: 2590, Rating: 4.0, Reviews: 87, Sizes: shoeSizes, DeliveryDays: 6},
		{ID: 189750423, Brand: "GSD", BrandID: BrandGSD, Name: "Шлепанцы пляжные", Price: 490, OldPrice: 890, Rating: 4.2, Reviews: 310, Sizes: []string{"40", "42", "44"}, DeliveryDays: 2},
	}

	for i := range products {
		p := &products[i]
		p.Images = []string{
			"/static/images/product-1.svg",
			"/static/images/product-2.svg",
			"/static/images/product-3.svg",
			"/static/images/product-4.svg",
		}
		p.CreatedAt = seedEpoch.Add(time.Duration(i) * 24 * time.Hour)
	}
	return products
}
