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

// GormReceiverRepository implements billing.ReceiverRepository with GORM
type GormReceiverRepository struct {
	db *gorm.DB
}

// NewGormReceiverRepository creates a receiver repository
func NewGormReceiverRepository(db *gorm.DB) *GormReceiverRepository {
	return &GormReceiverRepository{db: db}
}

// Create persists a new receiver
func (r *GormReceiverRepository) Create(ctx context.Context, receiver *billing.Receiver) error {
	model := models.ReceiverModelFromDomain(receiver)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID loads a receiver by ID
func (r *GormReceiverRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receiver, error) {
	var model models.ReceiverModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns receivers with pagination
func (r *GormReceiverRepository) List(ctx context.Context, filter shared.Filter) ([]*billing.Receiver, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReceiverModel{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var modelList []models.ReceiverModel
	err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	receivers := make([]*billing.Receiver, len(modelList))
	for i := range modelList {
		receivers[i] = modelList[i].ToDomain()
	}
	return receivers, total, nil
}

var _ billing.ReceiverRepository = (*GormReceiverRepository)(nil)
