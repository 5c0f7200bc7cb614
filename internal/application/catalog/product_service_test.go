package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListBelowMinimumStock(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) SetDiscount(ctx context.Context, productID uuid.UUID, discount *catalog.Discount) error {
	args := m.Called(ctx, productID, discount)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filter shared.Filter) ([]*catalog.Category, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	return NewProductService(productRepo, categoryRepo, zap.NewNop()), productRepo, categoryRepo
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with initial stock", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		productRepo.On("FindBySKU", ctx, "WID-1").Return(nil, shared.ErrNotFound)
		productRepo.On("Create", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, CreateProductRequest{
			Name:            "Widget",
			SKU:             "WID-1",
			RetailPrice:     decimal.NewFromInt(10),
			WholesalePrice:  decimal.NewFromInt(8),
			QuantityInStock: 25,
			MinimumStock:    5,
		})

		require.NoError(t, err)
		assert.Equal(t, 25, resp.QuantityInStock)
		assert.Equal(t, "ACTIVE", resp.Status)
	})

	t.Run("duplicate SKU", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		existing, _ := catalog.NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		productRepo.On("FindBySKU", ctx, "WID-1").Return(existing, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:        "Widget",
			SKU:         "WID-1",
			RetailPrice: decimal.NewFromInt(10),
		})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		service, productRepo, categoryRepo := newProductService()
		categoryID := uuid.New()
		productRepo.On("FindBySKU", ctx, "WID-1").Return(nil, shared.ErrNotFound)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:        "Widget",
			SKU:         "WID-1",
			CategoryID:  &categoryID,
			RetailPrice: decimal.NewFromInt(10),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("negative initial stock", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		productRepo.On("FindBySKU", ctx, "WID-1").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			Name:            "Widget",
			SKU:             "WID-1",
			RetailPrice:     decimal.NewFromInt(10),
			QuantityInStock: -1,
		})

		require.Error(t, err)
		productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_SetDiscount(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches valid discount", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		product, _ := catalog.NewProduct("Widget", "WID-1", decimal.NewFromInt(100), decimal.NewFromInt(80))

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SetDiscount", ctx, product.ID, mock.AnythingOfType("*catalog.Discount")).Return(nil)

		resp, err := service.SetDiscount(ctx, product.ID, SetDiscountRequest{
			Type:  catalog.DiscountPercentage,
			Value: decimal.NewFromInt(20),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Discount)
		assert.Equal(t, catalog.DiscountPercentage, resp.Discount.Type)
		assert.True(t, resp.Discount.IsActive)
	})

	t.Run("rejects out-of-bounds percentage", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		product, _ := catalog.NewProduct("Widget", "WID-1", decimal.NewFromInt(100), decimal.NewFromInt(80))
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.SetDiscount(ctx, product.ID, SetDiscountRequest{
			Type:  catalog.DiscountPercentage,
			Value: decimal.NewFromInt(120),
		})

		require.Error(t, err)
		productRepo.AssertNotCalled(t, "SetDiscount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_ListLowStock(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _ := newProductService()

	low, _ := catalog.NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
	low.MinimumStock = 5
	low.QuantityInStock = 2
	productRepo.On("ListBelowMinimumStock", ctx).Return([]*catalog.Product{low}, nil)

	responses, err := service.ListLowStock(ctx)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, 2, responses[0].QuantityInStock)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, zap.NewNop())

		categoryRepo.On("FindByName", ctx, "Beverages").Return(nil, shared.ErrNotFound)
		categoryRepo.On("Create", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := service.Create(ctx, CreateCategoryRequest{Name: "Beverages"})

		require.NoError(t, err)
		assert.Equal(t, "Beverages", resp.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo, zap.NewNop())
		existing, _ := catalog.NewCategory("Beverages", "")

		categoryRepo.On("FindByName", ctx, "Beverages").Return(existing, nil)

		_, err := service.Create(ctx, CreateCategoryRequest{Name: "Beverages"})

		require.Error(t, err)
		categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
