package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with zero stock", func(t *testing.T) {
		p, err := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		require.NoError(t, err)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, 0, p.QuantityInStock)
		assert.NotEqual(t, "", p.ID.String())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("  ", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		assert.Error(t, err)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewProduct("Widget", "", decimal.NewFromInt(10), decimal.NewFromInt(8))
		assert.Error(t, err)
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := NewProduct("Widget", "WID-1", decimal.NewFromInt(-1), decimal.NewFromInt(8))
		assert.Error(t, err)
	})
}

func TestProduct_Stock(t *testing.T) {
	t.Run("decrease within stock", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		p.QuantityInStock = 5

		require.NoError(t, p.DecreaseStock(3))
		assert.Equal(t, 2, p.QuantityInStock)
	})

	t.Run("decrease beyond stock fails and leaves stock unchanged", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		p.QuantityInStock = 5

		err := p.DecreaseStock(6)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 5, p.QuantityInStock)
	})

	t.Run("decrease exact stock reaches zero", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		p.QuantityInStock = 5

		require.NoError(t, p.DecreaseStock(5))
		assert.Equal(t, 0, p.QuantityInStock)
	})

	t.Run("non-positive quantities rejected", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		assert.Error(t, p.DecreaseStock(0))
		assert.Error(t, p.DecreaseStock(-1))
		assert.Error(t, p.IncreaseStock(0))
	})

	t.Run("increase restores stock", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		p.QuantityInStock = 2

		require.NoError(t, p.IncreaseStock(3))
		assert.Equal(t, 5, p.QuantityInStock)
	})

	t.Run("below minimum stock detection", func(t *testing.T) {
		p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))
		p.MinimumStock = 3
		p.QuantityInStock = 3
		assert.False(t, p.IsBelowMinimumStock())

		p.QuantityInStock = 2
		assert.True(t, p.IsBelowMinimumStock())
	})
}

func TestProduct_SetDiscount(t *testing.T) {
	p, _ := NewProduct("Widget", "WID-1", decimal.NewFromInt(10), decimal.NewFromInt(8))

	t.Run("valid discount is attached with product ID", func(t *testing.T) {
		d := &Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(10)}
		require.NoError(t, p.SetDiscount(d))
		assert.Equal(t, p.ID, p.Discount.ProductID)
	})

	t.Run("invalid discount is rejected", func(t *testing.T) {
		d := &Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(150)}
		assert.Error(t, p.SetDiscount(d))
	})

	t.Run("nil removes the discount", func(t *testing.T) {
		require.NoError(t, p.SetDiscount(nil))
		assert.Nil(t, p.Discount)
	})
}

func TestDiscount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Discount
		wantErr bool
	}{
		{"valid percentage", Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(50)}, false},
		{"percentage of 100 is allowed", Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(100)}, false},
		{"percentage above 100", Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(101)}, true},
		{"negative percentage", Discount{Type: DiscountPercentage, Value: decimal.NewFromInt(-1)}, true},
		{"valid fixed", Discount{Type: DiscountFixed, Value: decimal.NewFromInt(5)}, false},
		{"negative fixed", Discount{Type: DiscountFixed, Value: decimal.NewFromInt(-5)}, true},
		{"valid buy x get y", Discount{Type: DiscountBuyXGetY, BuyQty: 3, GetQty: 1}, false},
		{"buy x get y without quantities", Discount{Type: DiscountBuyXGetY}, true},
		{"unknown type", Discount{Type: "HAPPY_HOUR"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
