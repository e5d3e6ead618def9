package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/appctx"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
)

func projectionFixture() (*Sale, map[id.ID]*product.Product) {
	p := product.New(id.New(), "LG TV", 10, types.MustMoney("100.00"), product.SupplierFouani)
	p.SellingPrice = types.MustMoney("150.00")

	s := NewSale(id.New(), "Ada", PaymentCash)
	s.SetLines([]SaleLine{{
		LineID:       id.New(),
		LineNo:       1,
		ProductID:    p.ID,
		Quantity:     2,
		CostPrice:    types.MustMoney("100.00"),
		SellingPrice: types.MustMoney("150.00"),
		Amount:       types.MustMoney("300.00"),
		Profit:       types.MustMoney("100.00"),
	}})

	return s, map[id.ID]*product.Product{p.ID: p}
}

func TestProject_PrivilegedSeesCostAndProfit(t *testing.T) {
	s, products := projectionFixture()

	for _, role := range []appctx.Role{appctx.RoleAdmin, appctx.RoleManager} {
		view := Project(s, products, "Jane Doe", role)

		require.NotNil(t, view.ProfitMade, "role %s", role)
		assert.True(t, view.ProfitMade.Equal(types.MustMoney("100.00")))

		require.Len(t, view.Products, 1)
		require.NotNil(t, view.Products[0].CostPrice)
		require.NotNil(t, view.Products[0].Profit)
		assert.True(t, view.Products[0].CostPrice.Equal(types.MustMoney("100.00")))
	}
}

func TestProject_LinesCarryPublicProductID(t *testing.T) {
	s, products := projectionFixture()

	view := Project(s, products, "Jane Doe", appctx.RoleStaff)

	require.Len(t, view.Products, 1)
	p := products[s.Lines[0].ProductID]
	assert.Equal(t, p.PublicID, view.Products[0].ProductID)
	assert.NotEqual(t, p.ID, view.Products[0].ProductID)
}

func TestProject_StaffSeesNeither(t *testing.T) {
	s, products := projectionFixture()

	view := Project(s, products, "Jane Doe", appctx.RoleStaff)

	assert.Nil(t, view.ProfitMade)
	require.Len(t, view.Products, 1)
	assert.Nil(t, view.Products[0].CostPrice)
	assert.Nil(t, view.Products[0].Profit)

	// Staff still see the revenue side.
	assert.True(t, view.TotalPrice.Equal(types.MustMoney("300.00")))
	assert.True(t, view.Products[0].Amount.Equal(types.MustMoney("300.00")))
	assert.Equal(t, "Jane Doe", view.SoldBy)
}

func TestProject_DeletedProductKeepsEmptyName(t *testing.T) {
	s, _ := projectionFixture()

	view := Project(s, map[id.ID]*product.Product{}, "Jane Doe", appctx.RoleAdmin)

	require.Len(t, view.Products, 1)
	assert.Empty(t, view.Products[0].ProductName)
	assert.Equal(t, s.Lines[0].ProductID, view.Products[0].ProductID)
}
