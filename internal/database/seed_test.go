package database

import "testing"

func TestSeedProducts(t *testing.T) {
	products := SeedProducts()
	if len(products) == 0 {
		t.Fatal("seed catalog is empty")
	}

	seen := make(map[int64]bool)
	nikeInWindow := 0
	for _, p := range products {
		if seen[p.ID] {
			t.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true

		if len(p.Sizes) == 0 {
			t.Errorf("product %d has no sizes", p.ID)
		}
		if len(p.Images) == 0 {
			t.Errorf("product %d has no images", p.ID)
		}
		if p.OldPrice <= p.Price {
			t.Errorf("product %d old price %d not above price %d", p.ID, p.OldPrice, p.Price)
		}
		if p.BrandID == BrandNike && p.Price >= 1000 && p.Price <= 3000 {
			nikeInWindow++
		}
	}

	if nikeInWindow < 2 {
		t.Errorf("found %d Nike products between 1000 and 3000, want at least 2", nikeInWindow)
	}
	if !seen[146972802] {
		t.Error("article 146972802 missing from the seed catalog")
	}
}
