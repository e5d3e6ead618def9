package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/apperror"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
)

func TestParsePaymentMode(t *testing.T) {
	tests := []struct {
		input   string
		want    PaymentMode
		wantErr bool
	}{
		{"Cash", PaymentCash, false},
		{"Card", PaymentCard, false},
		{"Transfer", PaymentTransfer, false},
		{"POS", PaymentCard, false},
		{"pos", PaymentCard, false},
		{"cash", PaymentCash, false},
		{"TRANSFER", PaymentTransfer, false},
		{"", "", true},
		{"Crypto", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParsePaymentMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeInvalidPaymentMode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestNewSale_DefaultsCustomerName(t *testing.T) {
	s := NewSale(id.New(), "", PaymentCash)
	assert.Equal(t, DefaultCustomerName, s.CustomerName)
	assert.Equal(t, 1, s.Version)
	assert.False(t, s.ID == s.SaleID)
}

func TestSetLines_RecomputesTotals(t *testing.T) {
	s := NewSale(id.New(), "Ada", PaymentCash)
	s.SetLines([]SaleLine{
		{
			LineID:       id.New(),
			LineNo:       1,
			ProductID:    id.New(),
			Quantity:     2,
			SellingPrice: types.MustMoney("150.00"),
			CostPrice:    types.MustMoney("100.00"),
			Amount:       types.MustMoney("300.00"),
			Profit:       types.MustMoney("100.00"),
		},
		{
			LineID:       id.New(),
			LineNo:       2,
			ProductID:    id.New(),
			Quantity:     1,
			SellingPrice: types.MustMoney("30.555"),
			CostPrice:    types.MustMoney("20.00"),
			Amount:       types.MustMoney("30.555"),
			Profit:       types.MustMoney("10.555"),
		},
	})

	assert.True(t, s.TotalPrice.Equal(types.MustMoney("330.56")), "total %s", s.TotalPrice)
	assert.True(t, s.TotalProfit.Equal(types.MustMoney("110.56")), "profit %s", s.TotalProfit)
}

func TestSaleValidate(t *testing.T) {
	ctx := context.Background()
	productID := id.New()

	line := func(pid id.ID, qty int64) SaleLine {
		return SaleLine{
			LineID:       id.New(),
			ProductID:    pid,
			Quantity:     qty,
			SellingPrice: types.MustMoney("10.00"),
		}
	}

	t.Run("valid", func(t *testing.T) {
		s := NewSale(id.New(), "Ada", PaymentCash)
		s.SetLines([]SaleLine{line(productID, 1)})
		assert.NoError(t, s.Validate(ctx))
	})

	t.Run("no lines", func(t *testing.T) {
		s := NewSale(id.New(), "Ada", PaymentCash)
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("duplicate product", func(t *testing.T) {
		s := NewSale(id.New(), "Ada", PaymentCash)
		s.SetLines([]SaleLine{line(productID, 1), line(productID, 2)})
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("zero quantity", func(t *testing.T) {
		s := NewSale(id.New(), "Ada", PaymentCash)
		s.SetLines([]SaleLine{line(productID, 0)})
		assert.Error(t, s.Validate(ctx))
	})

	t.Run("bad payment mode", func(t *testing.T) {
		s := NewSale(id.New(), "Ada", PaymentMode("Crypto"))
		s.SetLines([]SaleLine{line(productID, 1)})
		assert.Error(t, s.Validate(ctx))
	})
}
