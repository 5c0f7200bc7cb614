package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductService manages the product catalog: creation, updates, discount
// upserts, and stock visibility. Stock mutations driven by orders go
// through the order workflow, not through this service.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.Named("product-service"),
	}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "a product with this SKU already exists")
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.RetailPrice, req.WholesalePrice)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.MinWholesaleQty = req.MinWholesaleQty
	product.MinimumStock = req.MinimumStock
	if req.QuantityInStock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "initial stock cannot be negative")
	}
	product.QuantityInStock = req.QuantityInStock

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a product with its discount
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products with page/limit pagination
func (s *ProductService) List(ctx context.Context, page, limit int) (*ProductListResponse, error) {
	filter := shared.Filter{Page: page, PageSize: limit}.Normalize()
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(products, total, filter), nil
}

// ListByCategory returns the products of one category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, page, limit int) (*ProductListResponse, error) {
	filter := shared.Filter{Page: page, PageSize: limit}.Normalize()
	products, total, err := s.productRepo.ListByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, err
	}
	return s.toListResponse(products, total, filter), nil
}

// ListLowStock returns products whose stock has dropped below their
// reorder threshold
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.ListBelowMinimumStock(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "product name cannot be empty")
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.RetailPrice != nil {
		if req.RetailPrice.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "retail price cannot be negative")
		}
		product.RetailPrice = *req.RetailPrice
	}
	if req.WholesalePrice != nil {
		if req.WholesalePrice.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "wholesale price cannot be negative")
		}
		product.WholesalePrice = *req.WholesalePrice
	}
	if req.MinWholesaleQty != nil {
		product.MinWholesaleQty = *req.MinWholesaleQty
	}
	if req.MinimumStock != nil {
		product.MinimumStock = *req.MinimumStock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// SetDiscount attaches or replaces a product's discount
func (s *ProductService) SetDiscount(ctx context.Context, productID uuid.UUID, req SetDiscountRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	discount := &catalog.Discount{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  product.ID,
		Type:       req.Type,
		Value:      req.Value,
		BuyQty:     req.BuyQty,
		GetQty:     req.GetQty,
		IsActive:   true,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}
	if err := discount.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.SetDiscount(ctx, product.ID, discount); err != nil {
		return nil, err
	}
	product.Discount = discount

	resp := ToProductResponse(product)
	return &resp, nil
}

// RemoveDiscount detaches a product's discount
func (s *ProductService) RemoveDiscount(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.SetDiscount(ctx, productID, nil)
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.productRepo.Delete(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("failed to delete product",
			zap.String("product_id", id.String()), zap.Error(err))
	}
	return err
}

func (s *ProductService) toListResponse(products []*catalog.Product, total int64, filter shared.Filter) *ProductListResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return &ProductListResponse{
		Products: responses,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.PageSize,
	}
}
