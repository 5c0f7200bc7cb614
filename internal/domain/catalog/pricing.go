package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PriceCalculator resolves the unit price a customer pays for a product.
// It is deterministic and side-effect free; all arithmetic is decimal.
type PriceCalculator struct {
	// EnforceDiscountWindow makes inactive or out-of-window discounts be
	// skipped during pricing. When false, an attached discount always
	// applies regardless of its IsActive flag or date window.
	EnforceDiscountWindow bool

	// Now provides the current time for window checks. Nil means time.Now.
	Now func() time.Time
}

// NewPriceCalculator creates a calculator with window enforcement configured
func NewPriceCalculator(enforceWindow bool) *PriceCalculator {
	return &PriceCalculator{EnforceDiscountWindow: enforceWindow}
}

// UnitPrice applies a discount to a retail price.
//
//   - nil discount leaves the retail price unchanged
//   - PERCENTAGE reduces by value percent; value outside [0,100] is a
//     validation error
//   - FIXED reduces by value; value exceeding the retail price is a
//     validation error, a unit price is never negative
//   - BUY_X_GET_Y leaves the unit price at retail, the promotion grants
//     free units instead
func (c *PriceCalculator) UnitPrice(retail valueobject.Money, d *Discount) (valueobject.Money, error) {
	if d == nil || !c.discountApplies(d) {
		return retail, nil
	}

	switch d.Type {
	case DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(100)) {
			return valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "percentage discount must be between 0 and 100")
		}
		return retail.Subtract(retail.CalculatePercentage(d.Value))
	case DiscountFixed:
		if d.Value.IsNegative() {
			return valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "fixed discount cannot be negative")
		}
		if d.Value.GreaterThan(retail.Amount()) {
			return valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "fixed discount cannot exceed the retail price")
		}
		return retail.Subtract(valueobject.NewMoneyUSD(d.Value))
	case DiscountBuyXGetY:
		return retail, nil
	default:
		return valueobject.Money{}, shared.NewDomainError("INVALID_INPUT", "invalid discount type")
	}
}

// UnitPriceFor resolves the effective unit price for buying quantity units
// of a product. Quantities at or above the wholesale threshold use the
// wholesale price and skip discounts; everything else goes through UnitPrice.
func (c *PriceCalculator) UnitPriceFor(product *Product, quantity int) (valueobject.Money, error) {
	if c.qualifiesForWholesale(product, quantity) {
		return product.WholesaleMoney(), nil
	}
	return c.UnitPrice(product.RetailMoney(), product.Discount)
}

// LineTotal returns quantity times the effective unit price
func (c *PriceCalculator) LineTotal(product *Product, quantity int) (valueobject.Money, error) {
	unit, err := c.UnitPriceFor(product, quantity)
	if err != nil {
		return valueobject.Money{}, err
	}
	return unit.MultiplyByInt(int64(quantity)), nil
}

// FreeUnits returns the number of free units granted by a BUY_X_GET_Y
// discount for the given purchased quantity. Zero for all other types.
func (c *PriceCalculator) FreeUnits(product *Product, quantity int) int {
	d := product.Discount
	if d == nil || d.Type != DiscountBuyXGetY || !c.discountApplies(d) {
		return 0
	}
	if d.BuyQty <= 0 {
		return 0
	}
	return (quantity / d.BuyQty) * d.GetQty
}

func (c *PriceCalculator) qualifiesForWholesale(product *Product, quantity int) bool {
	return product.MinWholesaleQty > 0 &&
		quantity >= product.MinWholesaleQty &&
		product.WholesalePrice.IsPositive()
}

func (c *PriceCalculator) discountApplies(d *Discount) bool {
	if !c.EnforceDiscountWindow {
		return true
	}
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	return d.IsActiveAt(now)
}
