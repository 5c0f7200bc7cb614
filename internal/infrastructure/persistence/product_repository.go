package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements catalog.ProductRepository with GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create persists a new product together with its discount
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Update persists changes to a product (discount excluded, see SetDiscount)
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.Discount = nil
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", model.ID).
		Select("name", "sku", "description", "category_id", "retail_price",
			"wholesale_price", "min_wholesale_qty", "minimum_stock", "status").
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads a product with its discount preloaded
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Preload("Discount").
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindBySKU loads a product by its SKU code
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Preload("Discount").
		First(&model, "sku = ?", sku).Error
	if err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// List returns products with pagination
func (r *GormProductRepository) List(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	return r.list(ctx, filter, r.db.WithContext(ctx).Model(&models.ProductModel{}))
}

// ListByCategory returns the products of one category with pagination
func (r *GormProductRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]*catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("category_id = ?", categoryID)
	return r.list(ctx, filter, query)
}

func (r *GormProductRepository) list(_ context.Context, filter shared.Filter, query *gorm.DB) ([]*catalog.Product, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var modelList []models.ProductModel
	err := query.
		Preload("Discount").
		Order(fmt.Sprintf("%s %s", filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	products := make([]*catalog.Product, len(modelList))
	for i := range modelList {
		products[i] = modelList[i].ToDomain()
	}
	return products, total, nil
}

// ListBelowMinimumStock returns products whose stock dropped below their
// reorder threshold
func (r *GormProductRepository) ListBelowMinimumStock(ctx context.Context) ([]*catalog.Product, error) {
	var modelList []models.ProductModel
	err := r.db.WithContext(ctx).
		Preload("Discount").
		Where("quantity_in_stock < minimum_stock").
		Order("quantity_in_stock asc").
		Find(&modelList).Error
	if err != nil {
		return nil, translateError(err)
	}

	products := make([]*catalog.Product, len(modelList))
	for i := range modelList {
		products[i] = modelList[i].ToDomain()
	}
	return products, nil
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReserveStock atomically decrements stock with a conditional single-statement
// update: the decrement only happens when enough stock remains, so concurrent
// reservations can never drive the quantity negative.
func (r *GormProductRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND quantity_in_stock >= ?", productID, quantity).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", quantity))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing product from one with too little stock
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ProductModel{}).
			Where("id = ?", productID).
			Count(&count).Error; err != nil {
			return translateError(err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// ReleaseStock atomically increments stock, mirroring a prior reservation
func (r *GormProductRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", productID).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", quantity))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetDiscount replaces the product's discount; a nil discount removes it
func (r *GormProductRepository) SetDiscount(ctx context.Context, productID uuid.UUID, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.DiscountModel{}, "product_id = ?", productID).Error; err != nil {
			return translateError(err)
		}
		if discount == nil {
			return nil
		}
		discount.ProductID = productID
		if err := tx.Create(models.DiscountModelFromDomain(discount)).Error; err != nil {
			return translateError(err)
		}
		return nil
	})
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
