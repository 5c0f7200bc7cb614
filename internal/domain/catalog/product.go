package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the availability of a product in the catalog
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// IsValid checks if the status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product is the catalog aggregate. QuantityInStock is the single source
// of truth for inventory; it only changes through ReserveStock/ReleaseStock
// on the repository or through the domain methods below.
type Product struct {
	shared.BaseAggregateRoot
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Description     string          `json:"description"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	RetailPrice     decimal.Decimal `json:"retail_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	MinWholesaleQty int             `json:"min_wholesale_qty"`
	QuantityInStock int             `json:"quantity_in_stock"`
	MinimumStock    int             `json:"minimum_stock"`
	Status          ProductStatus   `json:"status"`
	Discount        *Discount       `json:"discount,omitempty"`
}

// NewProduct creates a new active product with zero stock
func NewProduct(name, sku string, retailPrice, wholesalePrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "product name cannot be empty")
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "product SKU cannot be empty")
	}
	if retailPrice.IsNegative() || wholesalePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "prices cannot be negative")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		RetailPrice:       retailPrice,
		WholesalePrice:    wholesalePrice,
		Status:            ProductStatusActive,
	}, nil
}

// IsActive reports whether the product can be sold
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Discontinue removes the product from sale without deleting its history
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
}

// RetailMoney returns the retail price as Money in the default currency
func (p *Product) RetailMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.RetailPrice)
}

// WholesaleMoney returns the wholesale price as Money in the default currency
func (p *Product) WholesaleMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.WholesalePrice)
}

// HasSufficientStock checks whether the requested quantity can be reserved
func (p *Product) HasSufficientStock(quantity int) bool {
	return p.QuantityInStock >= quantity
}

// IsBelowMinimumStock reports whether the stock level has dropped below
// the configured reorder threshold
func (p *Product) IsBelowMinimumStock() bool {
	return p.QuantityInStock < p.MinimumStock
}

// DecreaseStock removes quantity from stock. Fails rather than going negative.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}
	if p.QuantityInStock < quantity {
		return shared.ErrInsufficientStock
	}
	p.QuantityInStock -= quantity
	return nil
}

// IncreaseStock adds quantity back to stock
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "quantity must be positive")
	}
	p.QuantityInStock += quantity
	return nil
}

// SetDiscount attaches or replaces the product's discount.
// A product has at most one discount at a time.
func (p *Product) SetDiscount(d *Discount) error {
	if d != nil {
		if err := d.Validate(); err != nil {
			return err
		}
		d.ProductID = p.ID
	}
	p.Discount = d
	return nil
}
