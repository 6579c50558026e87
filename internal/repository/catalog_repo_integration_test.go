//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"

	"github.com/themizzi/shopflow/internal/database"
	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/repository/testutil"
)

func TestCatalogRepository_ListProducts_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCatalogRepositoryWithDB(testDB.DB)

	products, err := repo.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}

	seed := database.SeedProducts()
	if len(products) != len(seed) {
		t.Fatalf("ListProducts() returned %d products, want %d", len(products), len(seed))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].ID >= products[i].ID {
			t.Errorf("products not ordered by id at %d", i)
		}
	}
}

func TestCatalogRepository_GetProductByID_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCatalogRepositoryWithDB(testDB.DB)
	want := database.SeedProducts()[0]

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "seeded product", id: want.ID},
		{name: "unknown product", id: 1, wantErr: models.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetProductByID(tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetProductByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetProductByID() error = %v", err)
			}
			if got.Name != want.Name || got.Price != want.Price || got.BrandID != want.BrandID {
				t.Errorf("GetProductByID() = %+v, want %+v", got, want)
			}
			if len(got.Sizes) != len(want.Sizes) || got.Sizes[0] != want.Sizes[0] {
				t.Errorf("Sizes = %v, want %v", got.Sizes, want.Sizes)
			}
			if len(got.Images) != len(want.Images) {
				t.Errorf("Images = %v, want %v", got.Images, want.Images)
			}
		})
	}
}

func TestMigrate_Idempotent_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	if err := database.Migrate(testDB.DB); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var count int
	if err := testDB.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	if count != len(database.SeedProducts()) {
		t.Errorf("products = %d after re-running migrations, want %d", count, len(database.SeedProducts()))
	}
}
