package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appordering "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// MockOrderRepository implements ordering.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status ordering.OrderStatus, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

// MockProductRepository implements catalog.ProductRepository for testing
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

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter shared.Filter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher implements shared.EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type orderHandlerFixture struct {
	router      *gin.Engine
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	publisher   *MockEventPublisher
}

func newOrderHandlerFixture(t *testing.T) *orderHandlerFixture {
	t.Helper()

	orderRepo := &MockOrderRepository{}
	productRepo := &MockProductRepository{}
	userRepo := &MockUserRepository{}
	publisher := &MockEventPublisher{}

	service := appordering.NewOrderService(
		appordering.NewNoOpTransactionScope(orderRepo, productRepo),
		userRepo,
		catalog.NewPriceCalculator(false),
		publisher,
		zap.NewNop(),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	NewOrderHandler(service).RegisterRoutes(api)

	return &orderHandlerFixture{
		router:      router,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func activeTestUser() *identity.User {
	user, _ := identity.NewUser("Alice", "alice@example.com", identity.RoleCustomer)
	return user
}

func activeTestProduct(t *testing.T, stock int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(
		"Espresso Beans", "SKU-0001",
		decimal.NewFromFloat(12.50), decimal.NewFromFloat(10.00),
	)
	require.NoError(t, err)
	product.QuantityInStock = stock
	return product
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("places an order and returns 201", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		user := activeTestUser()
		product := activeTestProduct(t, 40)

		f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.productRepo.On("ReserveStock", mock.Anything, product.ID, 2).Return(nil)
		f.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(appordering.CreateOrderRequest{
			UserID: user.ID,
			Items: []appordering.CreateOrderItemRequest{
				{ProductID: product.ID, Quantity: 2},
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, _ := json.Marshal(resp.Data)
		var order appordering.OrderResponse
		require.NoError(t, json.Unmarshal(data, &order))
		assert.Equal(t, ordering.OrderStatusPending, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(25.00)))
	})

	t.Run("returns 422 when stock is insufficient", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		user := activeTestUser()
		product := activeTestProduct(t, 1)

		f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.productRepo.On("ReserveStock", mock.Anything, product.ID, 5).
			Return(shared.ErrInsufficientStock)

		body, _ := json.Marshal(appordering.CreateOrderRequest{
			UserID: user.ID,
			Items: []appordering.CreateOrderItemRequest{
				{ProductID: product.ID, Quantity: 5},
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Cancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		user := activeTestUser()
		product := activeTestProduct(t, 40)

		order := ordering.NewOrder(user.ID)
		require.NoError(t, order.AddLine(product.ID, product.Name, product.SKU, 2, product.RetailMoney()))

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		f.productRepo.On("ReleaseStock", mock.Anything, product.ID, 2).Return(nil)
		f.orderRepo.On("Save", mock.Anything, order).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/v1/orders/%s/cancel", order.ID)
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))

		require.Equal(t, http.StatusOK, w.Code)
		f.productRepo.AssertCalled(t, "ReleaseStock", mock.Anything, product.ID, 2)
	})

	t.Run("returns 404 for an unknown order", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		orderID := uuid.New()
		f.orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/v1/orders/%s/cancel", orderID)
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("rejects an unknown status with 400", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		body, _ := json.Marshal(UpdateStatusRequest{Status: "SHIPPED"})
		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/v1/orders/%s/status", uuid.New())
		req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
