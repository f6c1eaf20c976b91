package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	price := decimal.RequireFromString("12.50")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("valid product creation", func(t *testing.T) {
		category := int64(7)
		p, err := NewProduct(42, "  COSRX-1 ", price, 10, &category, StatusActive, "https://img/1.png", now)
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.ID())
		assert.Equal(t, "COSRX-1", p.SKU())
		assert.True(t, price.Equal(p.Price()))
		assert.Equal(t, int64(10), p.StockQty())
		assert.Equal(t, StatusActive, p.Status())
		assert.True(t, p.IsActive())
		assert.Equal(t, now, p.CreatedAt())
		require.NotNil(t, p.CategoryID())
		assert.Equal(t, int64(7), *p.CategoryID())
	})

	t.Run("category is copied", func(t *testing.T) {
		category := int64(7)
		p, err := NewProduct(1, "SKU", price, 0, &category, StatusActive, "", now)
		require.NoError(t, err)

		category = 99
		*p.CategoryID() = 100
		assert.Equal(t, int64(7), *p.CategoryID())
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := NewProduct(1, "FREE", decimal.Zero, 0, nil, StatusInactive, "", now)
		assert.NoError(t, err)
	})

	t.Run("empty sku returns error", func(t *testing.T) {
		_, err := NewProduct(1, "   ", price, 0, nil, StatusActive, "", now)
		assert.ErrorIs(t, err, ErrEmptySKU)
	})

	t.Run("negative price returns error", func(t *testing.T) {
		_, err := NewProduct(1, "SKU", decimal.NewFromInt(-1), 0, nil, StatusActive, "", now)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("negative stock returns error", func(t *testing.T) {
		_, err := NewProduct(1, "SKU", price, -3, nil, StatusActive, "", now)
		assert.ErrorIs(t, err, ErrNegativeStock)
	})

	t.Run("unknown status returns error", func(t *testing.T) {
		_, err := NewProduct(1, "SKU", price, 0, nil, ProductStatus("archived"), "", now)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductStatus
		wantErr bool
	}{
		{in: "", want: StatusActive},
		{in: "active", want: StatusActive},
		{in: " INACTIVE ", want: StatusInactive},
		{in: "deleted", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
