package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vendora/vendora_backend/internal/apperrors"
	"github.com/vendora/vendora_backend/internal/core/domain"
	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
	"github.com/vendora/vendora_backend/internal/core/services"
	"github.com/vendora/vendora_backend/internal/dto"
)

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
	CreateProductFn      func(ctx context.Context, product domain.Product) (*domain.Product, error)
	FindProductByIDFn    func(ctx context.Context, productID int64) (*domain.Product, error)
	FindProductsFn       func(ctx context.Context, limit, offset int) ([]domain.Product, error)
	UpdateProductFn      func(ctx context.Context, product domain.Product) error
	MarkProductDeletedFn func(ctx context.Context, productID int64) error
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, product)
	}
	args := m.Called(ctx, product)
	var created *domain.Product
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Product)
	}
	return created, args.Error(1)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	if m.FindProductByIDFn != nil {
		return m.FindProductByIDFn(ctx, productID)
	}
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if m.FindProductsFn != nil {
		return m.FindProductsFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, product)
	}
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) MarkProductDeleted(ctx context.Context, productID int64) error {
	if m.MarkProductDeletedFn != nil {
		return m.MarkProductDeletedFn(ctx, productID)
	}
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// --- Mock FileSvcFacade ---
type MockFileService struct {
	mock.Mock
	SaveFileFn   func(ctx context.Context, filename string, size int64, content io.Reader) (string, error)
	DeleteFileFn func(ctx context.Context, path string) error
}

func (m *MockFileService) SaveFile(ctx context.Context, filename string, size int64, content io.Reader) (string, error) {
	if m.SaveFileFn != nil {
		return m.SaveFileFn(ctx, filename, size, content)
	}
	args := m.Called(ctx, filename, size, content)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) DeleteFile(ctx context.Context, path string) error {
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(ctx, path)
	}
	args := m.Called(ctx, path)
	return args.Error(0)
}

// --- Test Suite ---
type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	mockFileSvc     *MockFileService
	service         portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockFileSvc = new(MockFileService)
	suite.service = services.NewProductService(suite.mockProductRepo, suite.mockFileSvc)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Name: "Widget", Description: "A widget", Price: decimal.NewFromFloat(9.99), Stock: 3}

	suite.mockProductRepo.CreateProductFn = func(ctx context.Context, product domain.Product) (*domain.Product, error) {
		suite.Equal("Widget", product.Name)
		suite.True(product.IsActive)
		created := product
		created.ProductID = 1
		return &created, nil
	}

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(1), product.ProductID)
	suite.True(product.Price.Equal(decimal.NewFromFloat(9.99)))
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	ctx := context.Background()
	req := dto.CreateProductRequest{Name: "Widget", Price: decimal.NewFromInt(-1)}

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_PartialUpdate() {
	ctx := context.Background()
	existing := &domain.Product{ProductID: 1, Name: "Widget", Description: "A widget", Price: decimal.NewFromInt(10), Stock: 3, IsActive: true}
	newStock := 7

	suite.mockProductRepo.On("FindProductByID", ctx, int64(1)).Return(existing, nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(product domain.Product) bool {
		return product.Stock == newStock && product.Name == "Widget"
	})).Return(nil).Once()

	product, err := suite.service.UpdateProduct(ctx, 1, dto.UpdateProductRequest{Stock: &newStock})

	suite.Require().NoError(err)
	suite.Equal(newStock, product.Stock)
	suite.Equal("Widget", product.Name)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NotFound() {
	ctx := context.Background()

	suite.mockProductRepo.On("MarkProductDeleted", ctx, int64(99)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteProduct(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestAttachProductImage_ReplacesPrevious() {
	ctx := context.Background()
	previous := "/uploads/old.png"
	existing := &domain.Product{ProductID: 1, Name: "Widget", ImageURL: &previous, IsActive: true}
	content := strings.NewReader("fake image bytes")

	suite.mockProductRepo.On("FindProductByID", ctx, int64(1)).Return(existing, nil).Once()
	suite.mockFileSvc.On("SaveFile", ctx, "photo.png", int64(16), content).Return("/uploads/new.png", nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(product domain.Product) bool {
		return product.ImageURL != nil && *product.ImageURL == "/uploads/new.png"
	})).Return(nil).Once()
	suite.mockFileSvc.On("DeleteFile", ctx, "/uploads/old.png").Return(nil).Once()

	product, err := suite.service.AttachProductImage(ctx, 1, "photo.png", 16, content)

	suite.Require().NoError(err)
	suite.Require().NotNil(product.ImageURL)
	suite.Equal("/uploads/new.png", *product.ImageURL)
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockFileSvc.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestAttachProductImage_DropsOrphanOnUpdateFailure() {
	ctx := context.Background()
	existing := &domain.Product{ProductID: 1, Name: "Widget", IsActive: true}
	content := strings.NewReader("fake image bytes")

	suite.mockProductRepo.On("FindProductByID", ctx, int64(1)).Return(existing, nil).Once()
	suite.mockFileSvc.On("SaveFile", ctx, "photo.png", int64(16), content).Return("/uploads/new.png", nil).Once()
	suite.mockProductRepo.On("UpdateProduct", ctx, mock.AnythingOfType("domain.Product")).Return(assert.AnError).Once()
	suite.mockFileSvc.On("DeleteFile", ctx, "/uploads/new.png").Return(nil).Once()

	product, err := suite.service.AttachProductImage(ctx, 1, "photo.png", 16, content)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockFileSvc.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
