package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vendora/vendora_backend/internal/core/domain"
)

// CreateProductRequest defines the data required to create a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"imageURL,omitempty"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse converts a domain.Product to its public representation.
func ToProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
	}
}

// ToListProductsResponse converts a slice of domain.Product to ListProductsResponse.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	productResponses := make([]ProductResponse, len(products))
	for i := range products {
		productResponses[i] = ToProductResponse(&products[i])
	}
	return ListProductsResponse{
		Products: productResponses,
	}
}
