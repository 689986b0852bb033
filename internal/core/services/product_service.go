package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portsrepo "github.com/vendora/vendora_backend/internal/core/ports/repositories"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/dto"
)

// productService implements ProductSvcFacade.
type productService struct {
	productRepo portsrepo.ProductRepository
	fileSvc     portssvc.FileSvcFacade
}

// NewProductService creates a new instance of productService.
func NewProductService(productRepo portsrepo.ProductRepository, fileSvc portssvc.FileSvcFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		fileSvc:     fileSvc,
	}
}

// CreateProduct creates a new active product.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		CreatedDate:  now,
		ModifiedDate: now,
		IsActive:     true,
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// GetProductByID retrieves an active product by ID.
func (s *productService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated list of active products.
func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.FindProducts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies the non-nil fields of req to the product.
func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d for update: %w", productID, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	product.ModifiedDate = time.Now()
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}

	return product, nil
}

// DeleteProduct soft-deletes the product.
func (s *productService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.productRepo.MarkProductDeleted(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	return nil
}

// AttachProductImage stores the uploaded image, records its URL on the
// product and removes the previously stored file, if any.
func (s *productService) AttachProductImage(ctx context.Context, productID int64, filename string, size int64, content io.Reader) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d for image upload: %w", productID, err)
	}

	storedPath, err := s.fileSvc.SaveFile(ctx, filename, size, content)
	if err != nil {
		return nil, err
	}

	previous := product.ImageURL
	product.ImageURL = &storedPath
	product.ModifiedDate = time.Now()
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		// The product row is untouched; drop the orphaned upload.
		_ = s.fileSvc.DeleteFile(ctx, storedPath)
		return nil, fmt.Errorf("failed to record product image: %w", err)
	}

	if previous != nil {
		_ = s.fileSvc.DeleteFile(ctx, *previous)
	}

	return product, nil
}
