package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/themizzi/shopflow/internal/database"
	"github.com/themizzi/shopflow/internal/models"
)

const productColumns = `id, brand, brand_id, name, price, old_price, rating, reviews, sizes, images, delivery_days, created_at`

// CatalogRepository reads the fixture catalog from PostgreSQL
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a catalog repository on the shared connection
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		db: database.DB,
	}
}

// NewCatalogRepositoryWithDB creates a catalog repository with a specific database connection
func NewCatalogRepositoryWithDB(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID,
		&p.Brand,
		&p.BrandID,
		&p.Name,
		&p.Price,
		&p.OldPrice,
		&p.Rating,
		&p.Reviews,
		pq.Array(&p.Sizes),
		pq.Array(&p.Images),
		&p.DeliveryDays,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns every product ordered by id
func (r *CatalogRepository) ListProducts() ([]models.Product, error) {
	rows, err := r.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProductByID retrieves a product by its article number
func (r *CatalogRepository) GetProductByID(id int64) (*models.Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}
