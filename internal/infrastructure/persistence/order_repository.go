package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements ordering.OrderRepository with GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates an order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists a new order together with its lines
func (r *GormOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists header changes with an optimistic-lock check on Version.
// Lines are frozen at creation time and never rewritten.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"status":       string(order.Status),
			"total_amount": order.TotalAmount,
			"maker":        order.Maker,
			"maker_email":  order.MakerEmail,
			"version":      order.Version + 1,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the order is gone or someone else saved it first
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Count(&count).Error; err != nil {
			return translateError(err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	order.IncrementVersion()
	return nil
}

// FindByID loads an order with its lines preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns orders with pagination
func (r *GormOrderRepository) List(ctx context.Context, filter shared.Filter) ([]*ordering.Order, int64, error) {
	return r.list(filter, r.db.WithContext(ctx).Model(&models.OrderModel{}))
}

// ListByUser returns one user's orders with pagination
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID)
	return r.list(filter, query)
}

// ListByStatus returns orders in one status with pagination
func (r *GormOrderRepository) ListByStatus(ctx context.Context, status ordering.OrderStatus, filter shared.Filter) ([]*ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("status = ?", string(status))
	return r.list(filter, query)
}

func (r *GormOrderRepository) list(filter shared.Filter, query *gorm.DB) ([]*ordering.Order, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var modelList []models.OrderModel
	err := query.
		Preload("Items").
		Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	orders := make([]*ordering.Order, len(modelList))
	for i := range modelList {
		orders[i] = modelList[i].ToDomain()
	}
	return orders, total, nil
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
