package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// DiscountType determines how a discount is applied to the retail price
type DiscountType string

const (
	// DiscountPercentage reduces the price by a percentage of the retail price
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixed reduces the price by a fixed amount
	DiscountFixed DiscountType = "FIXED"
	// DiscountBuyXGetY grants free units; it does not change the unit price
	DiscountBuyXGetY DiscountType = "BUY_X_GET_Y"
)

// IsValid checks if the discount type is a known value
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed, DiscountBuyXGetY:
		return true
	}
	return false
}

// Discount is a promotional price reduction attached to a single product.
// A product has at most one discount at a time.
type Discount struct {
	shared.BaseEntity
	ProductID uuid.UUID       `json:"product_id"`
	Type      DiscountType    `json:"type"`
	Value     decimal.Decimal `json:"value"`
	BuyQty    int             `json:"buy_qty"`
	GetQty    int             `json:"get_qty"`
	IsActive  bool            `json:"is_active"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
}

// NewDiscount creates a validated active discount for a product
func NewDiscount(productID uuid.UUID, discountType DiscountType, value decimal.Decimal) (*Discount, error) {
	d := &Discount{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       discountType,
		Value:      value,
		IsActive:   true,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the discount invariants for its type. Bounds that depend
// on the product's retail price (fixed discount not exceeding it) are
// checked by the price calculator.
func (d *Discount) Validate() error {
	if !d.Type.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "invalid discount type")
	}
	switch d.Type {
	case DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_INPUT", "percentage discount must be between 0 and 100")
		}
	case DiscountFixed:
		if d.Value.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "fixed discount cannot be negative")
		}
	case DiscountBuyXGetY:
		if d.BuyQty <= 0 || d.GetQty <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "buy-x-get-y discount requires positive buy and get quantities")
		}
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return shared.NewDomainError("INVALID_INPUT", "discount end date cannot precede start date")
	}
	return nil
}

// IsActiveAt reports whether the discount is active and its window covers
// the given time. A discount with no window is bounded only by IsActive.
func (d *Discount) IsActiveAt(t time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && t.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && t.After(*d.EndDate) {
		return false
	}
	return true
}
