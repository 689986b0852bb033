package repositories

import (
	"context"

	"github.com/vendora/vendora_backend/internal/core/domain"
)

// ProductRepository provides persistence for the product catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	FindProductByID(ctx context.Context, productID int64) (*domain.Product, error)
	FindProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	MarkProductDeleted(ctx context.Context, productID int64) error
}
