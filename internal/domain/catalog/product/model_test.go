package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/id"
	"berostock/internal/core/types"
)

func TestDefaultSellingPrice(t *testing.T) {
	tests := []struct {
		cost string
		want string
	}{
		{"100.00", "120.00"},
		{"33.33", "40.00"},
		{"0", "0"},
		{"9.99", "11.99"},
	}

	for _, tt := range tests {
		got := DefaultSellingPrice(types.MustMoney(tt.cost))
		assert.True(t, got.Equal(types.MustMoney(tt.want)),
			"cost %s: want %s, got %s", tt.cost, tt.want, got)
	}
}

func TestNew_AppliesDefaultMargin(t *testing.T) {
	p := New(id.New(), "LG TV", 10, types.MustMoney("100.00"), SupplierFouani)

	assert.True(t, p.SellingPrice.Equal(types.MustMoney("120.00")))
	assert.Equal(t, 1, p.Version)
	assert.False(t, p.DeletionMark)
	assert.False(t, p.ID == p.PublicID)
}

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Product {
		return New(id.New(), "LG TV", 10, types.MustMoney("100.00"), SupplierFouani)
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("name too short", func(t *testing.T) {
		p := valid()
		p.Name = "X"
		assert.Error(t, p.Validate(ctx))
	})

	t.Run("negative quantity", func(t *testing.T) {
		p := valid()
		p.Quantity = -1
		assert.Error(t, p.Validate(ctx))
	})

	t.Run("negative cost price", func(t *testing.T) {
		p := valid()
		p.CostPrice = types.MustMoney("-5")
		assert.Error(t, p.Validate(ctx))
	})

	t.Run("unknown supplier", func(t *testing.T) {
		p := valid()
		p.Supplier = Supplier("Alibaba")
		err := p.Validate(ctx)
		require.Error(t, err)
	})
}
