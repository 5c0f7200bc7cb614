package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// IsValid checks if the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// Payment is the billing aggregate. Every order has at most one payment
// (unique index on OrderID) and a payment settles exactly once:
// PENDING to COMPLETED is the only forward transition.
type Payment struct {
	shared.BaseAggregateRoot
	OrderID      uuid.UUID       `json:"order_id"`
	ReceiverID   uuid.UUID       `json:"receiver_id"`
	Amount       decimal.Decimal `json:"amount"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	AmountChange decimal.Decimal `json:"amount_change"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty"`
	Status       PaymentStatus   `json:"status"`
}

// NewPayment creates a pending payment for an order. Amount is copied from
// the order total at creation time.
func NewPayment(orderID, receiverID uuid.UUID, amount valueobject.Money) (*Payment, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount cannot be negative")
	}
	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		ReceiverID:        receiverID,
		Amount:            amount.Amount(),
		AmountPaid:        decimal.Zero,
		AmountChange:      decimal.Zero,
		Status:            PaymentStatusPending,
	}, nil
}

// AmountMoney returns the amount due as Money in the default currency
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}

// Pay settles the payment with the tendered amount.
//
// Guards, in order: the payment must still be PENDING; the tendered amount
// must cover the amount due; a payment that already recorded money cannot
// settle again. On success the payment records the tendered amount, the
// change due back, the settlement time, and moves to COMPLETED.
func (p *Payment) Pay(amountPaid decimal.Decimal, now time.Time) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "payment is not pending")
	}
	if amountPaid.LessThan(p.Amount) {
		return shared.ErrInsufficientPayment
	}
	if p.AmountPaid.IsPositive() {
		return shared.ErrAlreadyPaid
	}

	p.AmountPaid = amountPaid
	p.AmountChange = amountPaid.Sub(p.Amount)
	p.PaymentDate = &now
	p.Status = PaymentStatusCompleted
	p.AddDomainEvent(NewPaymentCompletedEvent(p))
	return nil
}

// Fail marks a pending payment as failed
func (p *Payment) Fail() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "payment is not pending")
	}
	p.Status = PaymentStatusFailed
	return nil
}

// IsSettled reports whether the payment has completed
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusCompleted
}
