package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	brand VARCHAR(255) NOT NULL,
	brand_id BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL,
	price BIGINT NOT NULL,
	old_price BIGINT NOT NULL DEFAULT 0,
	rating REAL NOT NULL DEFAULT 0,
	reviews INTEGER NOT NULL DEFAULT 0,
	sizes TEXT[] NOT NULL DEFAULT '{}',
	images TEXT[] NOT NULL DEFAULT '{}',
	delivery_days INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_products_brand_id ON products(brand_id);
CREATE INDEX IF NOT EXISTS idx_products_price ON products(price);
`

const insertProduct = `
INSERT INTO products (id, brand, brand_id, name, price, old_price, rating, reviews, sizes, images, delivery_days, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO NOTHING
`

// RunMigrations creates and seeds the catalog tables on the shared connection
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Migrate creates the products table in db and inserts the seed catalog.
// Products that already exist are left untouched.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createProductsTable); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertProduct)
	if err != nil {
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range SeedProducts() {
		_, err := stmt.Exec(p.ID, p.Brand, p.BrandID, p.Name, p.Price, p.OldPrice, p.Rating, p.Reviews,
			pq.Array(p.Sizes), pq.Array(p.Images), p.DeliveryDays, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
