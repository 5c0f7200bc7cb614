package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/billing"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements billing.PaymentRepository with GORM.
// The unique index on order_id makes a concurrent duplicate Create fail
// with ErrAlreadyExists even when both requests pass the service check.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a payment repository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create persists a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists settlement changes with an optimistic-lock check on Version
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", payment.ID, payment.Version).
		Updates(map[string]interface{}{
			"amount_paid":   payment.AmountPaid,
			"amount_change": payment.AmountChange,
			"payment_date":  payment.PaymentDate,
			"status":        string(payment.Status),
			"version":       payment.Version + 1,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.PaymentModel{}).
			Where("id = ?", payment.ID).
			Count(&count).Error; err != nil {
			return translateError(err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	payment.IncrementVersion()
	return nil
}

// FindByID loads a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByOrderID loads the payment attached to an order
func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns payments with pagination
func (r *GormPaymentRepository) List(ctx context.Context, filter shared.Filter) ([]*billing.Payment, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var modelList []models.PaymentModel
	err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	payments := make([]*billing.Payment, len(modelList))
	for i := range modelList {
		payments[i] = modelList[i].ToDomain()
	}
	return payments, total, nil
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
