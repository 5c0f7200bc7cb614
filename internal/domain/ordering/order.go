package ordering

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusPackaging      OrderStatus = "PACKAGING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusFailed         OrderStatus = "FAILED"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPackaging, OrderStatusReadyForPickup,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from the status
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCancelled, OrderStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo checks whether a transition to the target status is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	allowed, ok := orderTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusPackaging, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusPackaging:      {OrderStatusReadyForPickup, OrderStatusFailed},
	OrderStatusReadyForPickup: {OrderStatusCompleted, OrderStatusFailed},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
	OrderStatusFailed:         {},
}

// OrderItem is a line of an order. Product name, code and unit price are
// frozen at order time so later catalog changes never alter order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Order is the ordering aggregate root
type Order struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID       `json:"user_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Maker       string          `json:"maker,omitempty"`
	MakerEmail  string          `json:"maker_email,omitempty"`
	Items       []OrderItem     `json:"items"`
}

// NewOrder creates a new pending order for a user
func NewOrder(userID uuid.UUID) *Order {
	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]OrderItem, 0),
	}
	return order
}

// AddLine appends an order line with the unit price frozen at order time
// and recomputes the order total. Only allowed while the order is PENDING
// and not yet persisted with items.
func (o *Order) AddLine(productID uuid.UUID, productName, productCode string, quantity int, unitPrice valueobject.Money) error {
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "unit price cannot be negative")
	}

	lineTotal := unitPrice.MultiplyByInt(int64(quantity))
	o.Items = append(o.Items, OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TotalPrice:  lineTotal.Amount(),
	})
	o.TotalAmount = o.TotalAmount.Add(lineTotal.Amount())
	return nil
}

// TotalMoney returns the order total as Money in the default currency
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// TransitionTo moves the order to the target status if the transition
// table allows it
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	return nil
}

// Cancel cancels the order. Cancellation is allowed only while the order
// is still PENDING; cancelling twice or cancelling a processed order is an
// invalid state so stock is never restored more than once.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("only pending orders can be cancelled, order is %s", o.Status))
	}
	o.Status = OrderStatusCancelled
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// MarkCreated records the creation event once the order content is final
func (o *Order) MarkCreated() {
	o.AddDomainEvent(NewOrderCreatedEvent(o))
}
