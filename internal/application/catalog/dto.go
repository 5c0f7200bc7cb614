package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Description     string          `json:"description,omitempty"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	MinWholesaleQty int             `json:"min_wholesale_qty"`
	QuantityInStock int             `json:"quantity_in_stock"`
	MinimumStock    int             `json:"minimum_stock"`
}

// UpdateProductRequest is the input for updating a product. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	CategoryID      *uuid.UUID       `json:"category_id,omitempty"`
	RetailPrice     *decimal.Decimal `json:"retail_price,omitempty"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price,omitempty"`
	MinWholesaleQty *int             `json:"min_wholesale_qty,omitempty"`
	MinimumStock    *int             `json:"minimum_stock,omitempty"`
}

// SetDiscountRequest attaches or replaces a product's discount
type SetDiscountRequest struct {
	Type      catalog.DiscountType `json:"type"`
	Value     decimal.Decimal      `json:"value"`
	BuyQty    int                  `json:"buy_qty,omitempty"`
	GetQty    int                  `json:"get_qty,omitempty"`
	IsActive  *bool                `json:"is_active,omitempty"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
}

// DiscountResponse is the discount projection in product responses
type DiscountResponse struct {
	Type      catalog.DiscountType `json:"type"`
	Value     decimal.Decimal      `json:"value"`
	BuyQty    int                  `json:"buy_qty,omitempty"`
	GetQty    int                  `json:"get_qty,omitempty"`
	IsActive  bool                 `json:"is_active"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
}

// ProductResponse is the representation of a product returned to callers
type ProductResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	SKU             string            `json:"sku"`
	Description     string            `json:"description,omitempty"`
	CategoryID      *uuid.UUID        `json:"category_id,omitempty"`
	RetailPrice     decimal.Decimal   `json:"retail_price"`
	WholesalePrice  decimal.Decimal   `json:"wholesale_price"`
	MinWholesaleQty int               `json:"min_wholesale_qty"`
	QuantityInStock int               `json:"quantity_in_stock"`
	MinimumStock    int               `json:"minimum_stock"`
	Status          string            `json:"status"`
	Discount        *DiscountResponse `json:"discount,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToProductResponse maps a product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		RetailPrice:     p.RetailPrice,
		WholesalePrice:  p.WholesalePrice,
		MinWholesaleQty: p.MinWholesaleQty,
		QuantityInStock: p.QuantityInStock,
		MinimumStock:    p.MinimumStock,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Discount != nil {
		resp.Discount = &DiscountResponse{
			Type:      p.Discount.Type,
			Value:     p.Discount.Value,
			BuyQty:    p.Discount.BuyQty,
			GetQty:    p.Discount.GetQty,
			IsActive:  p.Discount.IsActive,
			StartDate: p.Discount.StartDate,
			EndDate:   p.Discount.EndDate,
		}
	}
	return resp
}

// ProductListResponse is a paginated list of products
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse is the representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse maps a category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
