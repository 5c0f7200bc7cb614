package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/billing"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// --- mocks ---

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

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// --- fixtures ---

type orderServiceFixture struct {
	service     *OrderService
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	publisher   *MockEventPublisher
}

func newOrderServiceFixture() *orderServiceFixture {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	scope := NewNoOpTransactionScope(orderRepo, productRepo)

	service := NewOrderService(scope, userRepo, catalog.NewPriceCalculator(false), publisher, zap.NewNop())
	return &orderServiceFixture{
		service:     service,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func activeUser() *identity.User {
	user, _ := identity.NewUser("Jane Doe", "jane@example.com", identity.RoleCustomer)
	return user
}

func stockedProduct(name, sku, retail string, stock int) *catalog.Product {
	p, _ := catalog.NewProduct(name, sku,
		decimal.RequireFromString(retail), decimal.Zero)
	p.QuantityInStock = stock
	return p
}

// --- tests ---

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order with frozen prices and reserved stock", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		widget := stockedProduct("Widget", "WID-1", "10.00", 5)
		gadget := stockedProduct("Gadget", "GAD-1", "7.50", 10)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", ctx, widget.ID).Return(widget, nil)
		f.productRepo.On("FindByID", ctx, gadget.ID).Return(gadget, nil)
		f.productRepo.On("ReserveStock", ctx, widget.ID, 2).Return(nil)
		f.productRepo.On("ReserveStock", ctx, gadget.ID, 4).Return(nil)
		f.orderRepo.On("Create", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items: []CreateOrderItemRequest{
				{ProductID: widget.ID, Quantity: 2},
				{ProductID: gadget.ID, Quantity: 4},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusPending, resp.Status)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Widget", resp.Items[0].ProductName)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
		assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("50.00")))
		require.NotNil(t, resp.User)
		assert.Equal(t, user.ID, resp.User.ID)

		f.productRepo.AssertExpectations(t)
		f.orderRepo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("applies discount to frozen unit price", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		widget := stockedProduct("Widget", "WID-1", "100.00", 5)
		d, err := catalog.NewDiscount(widget.ID, catalog.DiscountPercentage, decimal.NewFromInt(20))
		require.NoError(t, err)
		require.NoError(t, widget.SetDiscount(d))

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", ctx, widget.ID).Return(widget, nil)
		f.productRepo.On("ReserveStock", ctx, widget.ID, 1).Return(nil)
		f.orderRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items:  []CreateOrderItemRequest{{ProductID: widget.ID, Quantity: 1}},
		})

		require.NoError(t, err)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	})

	t.Run("rejects empty item list before touching repositories", func(t *testing.T) {
		f := newOrderServiceFixture()

		_, err := f.service.Create(ctx, CreateOrderRequest{UserID: uuid.New()})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
		f.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive quantity before touching repositories", func(t *testing.T) {
		f := newOrderServiceFixture()

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: uuid.New(),
			Items:  []CreateOrderItemRequest{{ProductID: uuid.New(), Quantity: 0}},
		})

		require.Error(t, err)
		f.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown user aborts creation", func(t *testing.T) {
		f := newOrderServiceFixture()
		userID := uuid.New()
		f.userRepo.On("FindByID", ctx, userID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: userID,
			Items:  []CreateOrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("inactive user cannot order", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		user.Deactivate()
		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items:  []CreateOrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
		})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
	})

	t.Run("insufficient stock aborts with product details", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		widget := stockedProduct("Widget", "WID-1", "10.00", 1)

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", ctx, widget.ID).Return(widget, nil)
		f.productRepo.On("ReserveStock", ctx, widget.ID, 3).Return(shared.ErrInsufficientStock)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items:  []CreateOrderItemRequest{{ProductID: widget.ID, Quantity: 3}},
		})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INSUFFICIENT_STOCK", de.Code)
		assert.Contains(t, de.Message, "Widget")
		assert.Contains(t, de.Message, "1 on hand")
		assert.Contains(t, de.Message, "3 requested")
		f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("discontinued product aborts creation", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		widget := stockedProduct("Widget", "WID-1", "10.00", 5)
		widget.Discontinue()

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", ctx, widget.ID).Return(widget, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items:  []CreateOrderItemRequest{{ProductID: widget.ID, Quantity: 1}},
		})

		require.Error(t, err)
		f.productRepo.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid discount bounds abort creation", func(t *testing.T) {
		f := newOrderServiceFixture()
		user := activeUser()
		widget := stockedProduct("Widget", "WID-1", "10.00", 5)
		widget.Discount = &catalog.Discount{Type: catalog.DiscountFixed, Value: decimal.NewFromInt(50)}

		f.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		f.productRepo.On("FindByID", ctx, widget.ID).Return(widget, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			UserID: user.ID,
			Items:  []CreateOrderItemRequest{{ProductID: widget.ID, Quantity: 1}},
		})

		require.Error(t, err)
		f.productRepo.AssertNotCalled(t, "ReserveStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels pending order and releases stock per item", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := ordering.NewOrder(uuid.New())
		p1, p2 := uuid.New(), uuid.New()
		require.NoError(t, order.AddLine(p1, "Widget", "WID-1", 2, valueobject.NewMoneyUSD(decimal.NewFromInt(10))))
		require.NoError(t, order.AddLine(p2, "Gadget", "GAD-1", 3, valueobject.NewMoneyUSD(decimal.NewFromInt(5))))

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.productRepo.On("ReleaseStock", ctx, p1, 2).Return(nil)
		f.productRepo.On("ReleaseStock", ctx, p2, 3).Return(nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Cancel(ctx, order.ID)

		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusCancelled, resp.Status)
		f.productRepo.AssertExpectations(t)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("cancelling a non-pending order fails without releasing stock", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := ordering.NewOrder(uuid.New())
		require.NoError(t, order.TransitionTo(ordering.OrderStatusPackaging))

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.Cancel(ctx, order.ID)

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_STATE", de.Code)
		f.productRepo.AssertNotCalled(t, "ReleaseStock", mock.Anything, mock.Anything, mock.Anything)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderServiceFixture()
		id := uuid.New()
		f.orderRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Cancel(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances through the transition table", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := ordering.NewOrder(uuid.New())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("Save", ctx, order).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := f.service.UpdateStatus(ctx, order.ID, ordering.OrderStatusPackaging)

		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusPackaging, resp.Status)
	})

	t.Run("rejects disallowed transition", func(t *testing.T) {
		f := newOrderServiceFixture()
		order := ordering.NewOrder(uuid.New())

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.service.UpdateStatus(ctx, order.ID, ordering.OrderStatusCompleted)
		require.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancellation must use the cancel operation", func(t *testing.T) {
		f := newOrderServiceFixture()

		_, err := f.service.UpdateStatus(ctx, uuid.New(), ordering.OrderStatusCancelled)
		require.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newOrderServiceFixture()

	orders := []*ordering.Order{ordering.NewOrder(uuid.New()), ordering.NewOrder(uuid.New())}
	expectedFilter := shared.Filter{Page: 2, PageSize: 10}.Normalize()
	f.orderRepo.On("List", ctx, expectedFilter).Return(orders, int64(12), nil)

	resp, err := f.service.List(ctx, 2, 10)

	require.NoError(t, err)
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.Limit)
}

func TestPaymentCompletedHandler(t *testing.T) {
	ctx := context.Background()

	newHandler := func() (*PaymentCompletedHandler, *MockOrderRepository, *MockProductRepository) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		scope := NewNoOpTransactionScope(orderRepo, productRepo)
		return NewPaymentCompletedHandler(scope, zap.NewNop()), orderRepo, productRepo
	}

	completedEvent := func(orderID uuid.UUID) *billing.PaymentCompletedEvent {
		payment, _ := billing.NewPayment(orderID, uuid.New(),
			valueobject.NewMoneyUSD(decimal.NewFromInt(50)))
		return billing.NewPaymentCompletedEvent(payment)
	}

	t.Run("moves pending order to packaging", func(t *testing.T) {
		handler, orderRepo, _ := newHandler()
		order := ordering.NewOrder(uuid.New())

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		require.NoError(t, handler.Handle(ctx, completedEvent(order.ID)))
		assert.Equal(t, ordering.OrderStatusPackaging, order.Status)
	})

	t.Run("skips orders already past pending", func(t *testing.T) {
		handler, orderRepo, _ := newHandler()
		order := ordering.NewOrder(uuid.New())
		require.NoError(t, order.TransitionTo(ordering.OrderStatusPackaging))

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		require.NoError(t, handler.Handle(ctx, completedEvent(order.ID)))
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("ignores unrelated events", func(t *testing.T) {
		handler, orderRepo, _ := newHandler()
		order := ordering.NewOrder(uuid.New())

		require.NoError(t, handler.Handle(ctx, ordering.NewOrderCreatedEvent(order)))
		orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("subscribes to payment completed", func(t *testing.T) {
		handler, _, _ := newHandler()
		assert.Equal(t, []string{billing.EventTypePaymentCompleted}, handler.EventTypes())
	})
}
