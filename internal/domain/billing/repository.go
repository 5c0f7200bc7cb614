package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	// Create persists a new payment; the unique index on order_id makes
	// a second payment for the same order fail with ErrAlreadyExists
	Create(ctx context.Context, payment *Payment) error
	// Save updates the payment using optimistic locking on its version;
	// returns ErrConcurrencyConflict when the stored version differs
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	List(ctx context.Context, filter shared.Filter) ([]*Payment, int64, error)
}

// ReceiverRepository defines persistence operations for payout accounts
type ReceiverRepository interface {
	Create(ctx context.Context, receiver *Receiver) error
	FindByID(ctx context.Context, id uuid.UUID) (*Receiver, error)
	List(ctx context.Context, filter shared.Filter) ([]*Receiver, int64, error)
}
