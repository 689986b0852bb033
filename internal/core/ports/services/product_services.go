package services

import (
	"context"
	"io"

	"github.com/vendora/vendora_backend/internal/core/domain"
	"github.com/vendora/vendora_backend/internal/dto"
)

// ProductSvcFacade provides product catalog management.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID int64) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error

	// AttachProductImage stores the uploaded image and records its URL on the
	// product, replacing and removing any previous image file.
	AttachProductImage(ctx context.Context, productID int64, filename string, size int64, content io.Reader) (*domain.Product, error)
}

// FileSvcFacade stores and removes uploaded files.
type FileSvcFacade interface {
	// SaveFile validates the upload and writes it under the uploads
	// directory, returning the public path of the stored file.
	SaveFile(ctx context.Context, filename string, size int64, content io.Reader) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing file is
	// not an error.
	DeleteFile(ctx context.Context, path string) error
}
