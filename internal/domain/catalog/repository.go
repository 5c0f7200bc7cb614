package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
//
// ReserveStock and ReleaseStock are the only ways order processing may
// change stock levels. ReserveStock must be conditional at the storage
// layer (decrement only when enough stock remains) so that concurrent
// orders can never drive quantity_in_stock negative.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	// FindByID loads a product with its discount preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]*Product, int64, error)
	// ListBelowMinimumStock returns products whose stock dropped below their
	// reorder threshold
	ListBelowMinimumStock(ctx context.Context) ([]*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ReserveStock atomically decrements stock for a product.
	// Returns ErrInsufficientStock when the remaining stock is lower than
	// quantity, ErrNotFound when the product does not exist.
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// ReleaseStock atomically increments stock for a product, used when an
	// order is cancelled.
	ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// SetDiscount replaces the product's discount; a nil discount removes it
	SetDiscount(ctx context.Context, productID uuid.UUID, discount *Discount) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, filter shared.Filter) ([]*Category, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
