package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event types published by the billing domain
const (
	EventTypePaymentCompleted = "payment.completed"
)

// PaymentCompletedEvent is published after a payment settles. The ordering
// side listens for it to move the paid order into packaging.
type PaymentCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	Amount       decimal.Decimal `json:"amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	AmountChange decimal.Decimal `json:"amount_change"`
}

// NewPaymentCompletedEvent creates a PaymentCompletedEvent from a payment
func NewPaymentCompletedEvent(payment *Payment) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCompleted, "Payment", payment.ID),
		OrderID:         payment.OrderID,
		Amount:          payment.Amount,
		AmountPaid:      payment.AmountPaid,
		AmountChange:    payment.AmountChange,
	}
}
