package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// Create persists the order together with its items
	Create(ctx context.Context, order *Order) error
	// Save updates the order using optimistic locking on its version;
	// returns ErrConcurrencyConflict when the stored version differs
	Save(ctx context.Context, order *Order) error
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter shared.Filter) ([]*Order, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
	ListByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]*Order, int64, error)
}
