package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event types published by the ordering domain
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderCancelled     = "order.cancelled"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published after an order has been persisted
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderCreatedEvent creates an OrderCreatedEvent from an order
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID),
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		ItemCount:       len(order.Items),
	}
}

// OrderCancelledEvent is published after an order has been cancelled and
// its stock released
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewOrderCancelledEvent creates an OrderCancelledEvent from an order
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", order.ID),
		UserID:          order.UserID,
	}
}

// OrderStatusChangedEvent is published when an order moves through its
// fulfillment statuses
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From OrderStatus `json:"from"`
	To   OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", order.ID),
		From:            from,
		To:              to,
	}
}
