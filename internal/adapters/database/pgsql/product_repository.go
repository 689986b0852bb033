package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portsrepo "github.com/vendora/vendora_backend/internal/core/ports/repositories"
	"github.com/vendora/vendora_backend/internal/models"
)

// ProductRepository is the Postgres-backed product store.
type ProductRepository struct {
	db PGXPool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db PGXPool) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ portsrepo.ProductRepository = (*ProductRepository)(nil)

const productColumns = `product_id, name, description, price, stock, image_url, created_date, modified_date, is_active`

func toModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Stock:        d.Stock,
		ImageURL:     d.ImageURL,
		CreatedDate:  d.CreatedDate,
		ModifiedDate: d.ModifiedDate,
		IsActive:     d.IsActive,
	}
}

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Stock:        m.Stock,
		ImageURL:     m.ImageURL,
		CreatedDate:  m.CreatedDate,
		ModifiedDate: m.ModifiedDate,
		IsActive:     m.IsActive,
	}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Description,
		&m.Price,
		&m.Stock,
		&m.ImageURL,
		&m.CreatedDate,
		&m.ModifiedDate,
		&m.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateProduct inserts a new product row.
func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m := toModelProduct(product)
	query := `
		INSERT INTO products (name, description, price, stock, image_url, created_date, modified_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id;
	`
	err := r.db.QueryRow(ctx, query,
		m.Name,
		m.Description,
		m.Price,
		m.Stock,
		m.ImageURL,
		m.CreatedDate,
		m.ModifiedDate,
		m.IsActive,
	).Scan(&m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	created := toDomainProduct(m)
	return &created, nil
}

// FindProductByID returns the active product with the given ID.
func (r *ProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 AND is_active;`
	m, err := scanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %d: %w", productID, err)
	}
	product := toDomainProduct(*m)
	return &product, nil
}

// FindProducts returns a page of active products.
func (r *ProductRepository) FindProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY product_id LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}

	return products, nil
}

// UpdateProduct rewrites the mutable fields of an active product.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := toModelProduct(product)
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, image_url = $5, modified_date = $6
		WHERE product_id = $7 AND is_active;
	`
	cmdTag, err := r.db.Exec(ctx, query, m.Name, m.Description, m.Price, m.Stock, m.ImageURL, m.ModifiedDate, m.ProductID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkProductDeleted soft-deletes the product.
func (r *ProductRepository) MarkProductDeleted(ctx context.Context, productID int64) error {
	query := `UPDATE products SET is_active = FALSE, modified_date = now() WHERE product_id = $1 AND is_active;`
	cmdTag, err := r.db.Exec(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to mark product %d as deleted: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
