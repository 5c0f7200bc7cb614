package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService orchestrates the order workflow: creation with stock
// reservation, cancellation with stock release, and fulfillment status
// updates. All stock-touching paths run inside a transaction scope so an
// order and its reservations commit or roll back together.
type OrderService struct {
	scope      TransactionScope
	userRepo   identity.UserRepository
	calculator *catalog.PriceCalculator
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewOrderService creates an OrderService
func NewOrderService(
	scope TransactionScope,
	userRepo identity.UserRepository,
	calculator *catalog.PriceCalculator,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:      scope,
		userRepo:   userRepo,
		calculator: calculator,
		eventBus:   eventBus,
		logger:     logger.Named("order-service"),
	}
}

// Create places a new order. Per item, in input order: the product and its
// discount are loaded, the unit price is frozen, and stock is reserved with
// a conditional decrement. Any failure rolls back every prior reservation
// in the same transaction. The order is persisted as PENDING and
// OrderCreated is published after commit.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "order must contain at least one item")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION_ERROR",
				fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "user account is inactive")
	}

	order := ordering.NewOrder(user.ID)
	order.Maker = req.Maker
	order.MakerEmail = req.MakerEmail

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, item := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainError("INVALID_STATE",
					fmt.Sprintf("product %s is not available for sale", product.Name))
			}

			unitPrice, err := s.calculator.UnitPriceFor(product, item.Quantity)
			if err != nil {
				return err
			}
			if err := order.AddLine(product.ID, product.Name, product.SKU, item.Quantity, unitPrice); err != nil {
				return err
			}

			if err := repos.ProductRepo().ReserveStock(ctx, product.ID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("insufficient stock for %q: %d on hand, %d requested",
							product.Name, product.QuantityInStock, item.Quantity))
				}
				return err
			}
		}

		order.MarkCreated()
		return repos.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("total", order.TotalAmount.String()),
		zap.Int("items", len(order.Items)))

	resp := ToOrderResponse(order, user)
	return &resp, nil
}

// Cancel cancels a pending order and releases the reserved stock of every
// item in the same transaction. OrderCancelled is published after commit.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *ordering.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := repos.ProductRepo().ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("order cancelled", zap.String("order_id", order.ID.String()))

	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// UpdateStatus moves an order through its fulfillment statuses. The
// transition table is checked by the aggregate; cancellation must go
// through Cancel so stock is released.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target ordering.OrderStatus) (*OrderResponse, error) {
	if target == ordering.OrderStatusCancelled {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "use the cancel operation to cancel an order")
	}

	var order *ordering.Order
	var from ordering.OrderStatus

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		from = order.Status
		if err := order.TransitionTo(target); err != nil {
			return err
		}
		order.AddDomainEvent(ordering.NewOrderStatusChangedEvent(order, from, target))
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.logger.Info("order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(target)))

	resp := ToOrderResponse(order, nil)
	return &resp, nil
}

// GetByID returns an order with its items and user projection
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *ordering.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		// order history must stay readable even if the user row is gone
		user = nil
	}

	resp := ToOrderResponse(order, user)
	return &resp, nil
}

// List returns orders newest first with page/limit pagination
func (s *OrderService) List(ctx context.Context, page, limit int) (*OrderListResponse, error) {
	filter := shared.Filter{Page: page, PageSize: limit}.Normalize()

	var orders []*ordering.Order
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		orders, total, err = repos.OrderRepo().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order, nil))
	}
	return &OrderListResponse{
		Orders: responses,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.PageSize,
	}, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	order.ClearDomainEvents()
}
