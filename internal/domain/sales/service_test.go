package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berostock/internal/core/apperror"
	"berostock/internal/core/appctx"
	"berostock/internal/core/id"
	"berostock/internal/core/types"
	"berostock/internal/domain/catalog/product"
)

// fakeInventory is an in-memory product catalog with stock tracking.
type fakeInventory struct {
	products []*product.Product
}

func (f *fakeInventory) find(productID id.ID) *product.Product {
	for _, p := range f.products {
		if p.ID == productID {
			return p
		}
	}
	return nil
}

func (f *fakeInventory) ResolveRef(ctx context.Context, ref string) (*product.Product, error) {
	for _, p := range f.products {
		if p.ID.String() == ref || p.PublicID.String() == ref {
			copy := *p
			return &copy, nil
		}
	}
	return nil, apperror.NewNotFound("product", ref)
}

func (f *fakeInventory) GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error) {
	out := make(map[id.ID]*product.Product)
	for _, pid := range ids {
		if p := f.find(pid); p != nil {
			out[pid] = p
		}
	}
	return out, nil
}

func (f *fakeInventory) DecrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	p := f.find(productID)
	if p == nil || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (f *fakeInventory) IncrementStock(ctx context.Context, productID id.ID, qty int64) (bool, error) {
	p := f.find(productID)
	if p == nil {
		return false, nil
	}
	p.Quantity += qty
	return true, nil
}

// fakeSaleStore keeps sales in memory.
type fakeSaleStore struct {
	sales []*Sale
}

func (f *fakeSaleStore) Create(ctx context.Context, sale *Sale) error {
	copy := *sale
	f.sales = append(f.sales, &copy)
	return nil
}

func (f *fakeSaleStore) GetByKey(ctx context.Context, ref id.ID) (*Sale, error) {
	for _, s := range f.sales {
		if s.ID == ref || s.SaleID == ref {
			copy := *s
			return &copy, nil
		}
	}
	return nil, apperror.NewNotFound("sale", ref)
}

func (f *fakeSaleStore) GetByRef(ctx context.Context, ref id.ID) (*Sale, error) {
	if s, err := f.GetByKey(ctx, ref); err == nil {
		return s, nil
	}
	// Product reference fallback, newest sale first.
	for i := len(f.sales) - 1; i >= 0; i-- {
		for _, line := range f.sales[i].Lines {
			if line.ProductID == ref {
				copy := *f.sales[i]
				return &copy, nil
			}
		}
	}
	return nil, apperror.NewNotFound("sale", ref)
}

func (f *fakeSaleStore) Update(ctx context.Context, sale *Sale) error {
	for i, s := range f.sales {
		if s.ID == sale.ID {
			copy := *sale
			f.sales[i] = &copy
			return nil
		}
	}
	return apperror.NewNotFound("sale", sale.ID)
}

func (f *fakeSaleStore) Delete(ctx context.Context, saleID id.ID) error {
	for i, s := range f.sales {
		if s.ID == saleID {
			f.sales = append(f.sales[:i], f.sales[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("sale", saleID)
}

func (f *fakeSaleStore) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	result := &ListResult{Total: int64(len(f.sales))}
	start := (filter.Page - 1) * filter.Limit
	for i, s := range f.sales {
		if i >= start && len(result.Sales) < filter.Limit {
			copy := *s
			result.Sales = append(result.Sales, &copy)
		}
	}
	return result, nil
}

func (f *fakeSaleStore) All(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	out := make([]*Sale, 0, len(f.sales))
	for _, s := range f.sales {
		copy := *s
		out = append(out, &copy)
	}
	return out, nil
}

type fakeUserDirectory struct {
	names map[id.ID]string
}

func (f *fakeUserDirectory) GetNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	out := make(map[id.ID]string)
	for _, uid := range ids {
		if name, ok := f.names[uid]; ok {
			out[uid] = name
		}
	}
	return out, nil
}

type fakeAuditor struct {
	actions []string
}

func (f *fakeAuditor) Record(ctx context.Context, action string, saleID id.ID, payload any) error {
	f.actions = append(f.actions, action)
	return nil
}

// fakeTxManager mimics transactional stock semantics: on error every
// quantity change made inside fn is rolled back.
type fakeTxManager struct {
	inventory *fakeInventory
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[id.ID]int64, len(f.inventory.products))
	for _, p := range f.inventory.products {
		snapshot[p.ID] = p.Quantity
	}
	if err := fn(ctx); err != nil {
		for _, p := range f.inventory.products {
			p.Quantity = snapshot[p.ID]
		}
		return err
	}
	return nil
}

type fixture struct {
	service   *Service
	inventory *fakeInventory
	store     *fakeSaleStore
	auditor   *fakeAuditor
	sellerID  id.ID
}

func newFixture(t *testing.T, products ...*product.Product) *fixture {
	t.Helper()
	inventory := &fakeInventory{products: products}
	store := &fakeSaleStore{}
	auditor := &fakeAuditor{}
	sellerID := id.New()
	users := &fakeUserDirectory{names: map[id.ID]string{sellerID: "Jane Doe"}}
	service := NewService(store, inventory, users, auditor, &fakeTxManager{inventory: inventory})
	return &fixture{
		service:   service,
		inventory: inventory,
		store:     store,
		auditor:   auditor,
		sellerID:  sellerID,
	}
}

func (f *fixture) ctx(role appctx.Role) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:    f.sellerID.String(),
		Email:     "jane@berostock.local",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      role,
	})
}

func newTestProduct(name string, quantity int64, cost, selling string) *product.Product {
	p := product.New(id.New(), name, quantity, types.MustMoney(cost), product.SupplierFouani)
	p.SellingPrice = types.MustMoney(selling)
	return p
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreate_Success(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	fan := newTestProduct("Standing Fan", 5, "20.00", "30.00")
	f := newFixture(t, tv, fan)

	view, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		CustomerName: "Ada",
		PaymentMode:  "Cash",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 2},
			{ProductRef: fan.PublicID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", view.CustomerName)
	assert.Equal(t, PaymentCash, view.PaymentMode)
	assert.Equal(t, "Jane Doe", view.SoldBy)
	assert.True(t, view.TotalPrice.Equal(types.MustMoney("390.00")), "total %s", view.TotalPrice)
	require.NotNil(t, view.ProfitMade)
	assert.True(t, view.ProfitMade.Equal(types.MustMoney("130.00")), "profit %s", view.ProfitMade)

	require.Len(t, view.Products, 2)
	assert.Equal(t, "LG TV", view.Products[0].ProductName)
	assert.Equal(t, "Standing Fan", view.Products[1].ProductName)

	assert.Equal(t, int64(8), tv.Quantity)
	assert.Equal(t, int64(2), fan.Quantity)
	assert.Equal(t, []string{"sale.create"}, f.auditor.actions)
}

func TestCreate_DefaultsCustomerName(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	view, err := f.service.Create(f.ctx(appctx.RoleStaff), CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultCustomerName, view.CustomerName)
}

func TestCreate_POSAliasesToCard(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	view, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "POS",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentCard, view.PaymentMode)
}

func TestCreate_InvalidPaymentMode(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Bitcoin",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	assertCode(t, err, apperror.CodeInvalidPaymentMode)
}

func TestCreate_InsufficientStockRollsBackWholeSale(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	fan := newTestProduct("Standing Fan", 2, "20.00", "30.00")
	f := newFixture(t, tv, fan)

	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 3},
			{ProductRef: fan.ID.String(), Quantity: 5},
		},
	})
	assertCode(t, err, apperror.CodeInsufficientStock)

	// The first line's decrement must not survive the failure.
	assert.Equal(t, int64(10), tv.Quantity)
	assert.Equal(t, int64(2), fan.Quantity)
	assert.Empty(t, f.store.sales)
	assert.Empty(t, f.auditor.actions)
}

func TestCreate_DuplicateRawRefs(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 1},
			{ProductRef: tv.ID.String(), Quantity: 2},
		},
	})
	assertCode(t, err, apperror.CodeDuplicateLineItem)
}

func TestCreate_DuplicateViaPublicID(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	// Same product under two different references.
	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 1},
			{ProductRef: tv.PublicID.String(), Quantity: 2},
		},
	})
	assertCode(t, err, apperror.CodeDuplicateLineItem)
	assert.Equal(t, int64(10), tv.Quantity)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 0}},
	})
	assertCode(t, err, apperror.CodeInvalidQuantity)
}

func TestCreate_EmptyItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
	})
	assertCode(t, err, apperror.CodeValidation)
}

func TestCreate_RequiresAuthentication(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateInput{PaymentMode: "Cash"})
	assertCode(t, err, apperror.CodeUnauthorized)
}

func TestGetByRef_AcceptsPublicID(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	byID, err := f.service.GetByRef(ctx, created.ID.String())
	require.NoError(t, err)
	bySaleID, err := f.service.GetByRef(ctx, created.SaleID.String())
	require.NoError(t, err)

	assert.Equal(t, byID.ID, bySaleID.ID)

	// A product reference resolves to a sale containing it.
	byProduct, err := f.service.GetByRef(ctx, tv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byProduct.ID)
}

func TestGetByRef_MalformedRefIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByRef(f.ctx(appctx.RoleAdmin), "not-a-uuid")
	assertCode(t, err, apperror.CodeNotFound)
}

func TestUpdate_ReplacingItemsRestoresThenReserves(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	fan := newTestProduct("Standing Fan", 5, "20.00", "30.00")
	f := newFixture(t, tv, fan)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), tv.Quantity)

	updated, err := f.service.Update(ctx, created.ID.String(), UpdateInput{
		Items: []LineItem{{ProductRef: fan.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	// Old reservation returned, new one taken.
	assert.Equal(t, int64(10), tv.Quantity)
	assert.Equal(t, int64(3), fan.Quantity)
	assert.True(t, updated.TotalPrice.Equal(types.MustMoney("60.00")), "total %s", updated.TotalPrice)
	assert.Equal(t, []string{"sale.create", "sale.update"}, f.auditor.actions)
}

func TestUpdate_ReReserveCountsRestoredStock(t *testing.T) {
	tv := newTestProduct("LG TV", 5, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)

	// Only 1 left on the shelf, but the sale's own 4 come back first.
	updated, err := f.service.Update(ctx, created.ID.String(), UpdateInput{
		Items: []LineItem{{ProductRef: tv.ID.String(), Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), tv.Quantity)
	assert.True(t, updated.TotalPrice.Equal(types.MustMoney("750.00")))
}

func TestUpdate_FieldsOnlyLeavesStockAlone(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		CustomerName: "Ada",
		PaymentMode:  "Cash",
		Items:        []LineItem{{ProductRef: tv.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	mode := "Transfer"
	name := ""
	updated, err := f.service.Update(ctx, created.ID.String(), UpdateInput{
		CustomerName: &name,
		PaymentMode:  &mode,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultCustomerName, updated.CustomerName)
	assert.Equal(t, PaymentTransfer, updated.PaymentMode)
	assert.Equal(t, int64(8), tv.Quantity)
}

func TestUpdate_StaffCannotTouchOthersSales(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	created, err := f.service.Create(f.ctx(appctx.RoleAdmin), CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	otherStaff := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: id.New().String(),
		Role:   appctx.RoleStaff,
	})

	name := "Someone"
	_, err = f.service.Update(otherStaff, created.ID.String(), UpdateInput{CustomerName: &name})
	assertCode(t, err, apperror.CodeForbidden)

	err = f.service.Delete(otherStaff, created.ID.String())
	assertCode(t, err, apperror.CodeForbidden)
}

func TestUpdate_StaffMayTouchOwnSale(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleStaff)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	name := "Regular"
	updated, err := f.service.Update(ctx, created.ID.String(), UpdateInput{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Regular", updated.CustomerName)
}

func TestDelete_RestoresStock(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), tv.Quantity)

	require.NoError(t, f.service.Delete(ctx, created.SaleID.String()))

	assert.Equal(t, int64(10), tv.Quantity)
	assert.Empty(t, f.store.sales)

	_, err = f.service.GetByRef(ctx, created.ID.String())
	assertCode(t, err, apperror.CodeNotFound)
}

func TestDelete_SkipsVanishedProducts(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	fan := newTestProduct("Standing Fan", 5, "20.00", "30.00")
	f := newFixture(t, tv, fan)
	ctx := f.ctx(appctx.RoleAdmin)

	created, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 2},
			{ProductRef: fan.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Fan disappears from the catalog before the sale is removed.
	f.inventory.products = f.inventory.products[:1]

	require.NoError(t, f.service.Delete(ctx, created.ID.String()))
	assert.Equal(t, int64(10), tv.Quantity)
}

func TestMutations_RejectProductReferences(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	_, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 4}},
	})
	require.NoError(t, err)

	// Reads resolve product references; mutations must not.
	err = f.service.Delete(ctx, tv.ID.String())
	assertCode(t, err, apperror.CodeNotFound)

	name := "Grace"
	_, err = f.service.Update(ctx, tv.ID.String(), UpdateInput{CustomerName: &name})
	assertCode(t, err, apperror.CodeNotFound)

	require.Len(t, f.store.sales, 1)
	assert.Equal(t, int64(6), tv.Quantity)
}

func TestList_RejectsOversizedLimit(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.List(f.ctx(appctx.RoleAdmin), ListFilter{Limit: 21})
	assertCode(t, err, apperror.CodeValidation)
}

func TestList_DefaultsAndAggregates(t *testing.T) {
	tv := newTestProduct("LG TV", 100, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleAdmin)

	for i := 0; i < 12; i++ {
		_, err := f.service.Create(ctx, CreateInput{
			PaymentMode: "Cash",
			Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	out, err := f.service.List(ctx, ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(12), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 2, out.Pages)
	assert.Len(t, out.Sales, DefaultPageLimit)

	// Aggregates cover the returned page, not the whole set.
	assert.True(t, out.TotalSales.Equal(types.MustMoney("1500.00")), "total sales %s", out.TotalSales)
	require.NotNil(t, out.TotalProfit)
	assert.True(t, out.TotalProfit.Equal(types.MustMoney("500.00")))
}

func TestList_StaffSeesNoProfitAggregate(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)

	_, err := f.service.Create(f.ctx(appctx.RoleStaff), CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	out, err := f.service.List(f.ctx(appctx.RoleStaff), ListFilter{})
	require.NoError(t, err)

	assert.Nil(t, out.TotalProfit)
	require.Len(t, out.Sales, 1)
	assert.Nil(t, out.Sales[0].ProfitMade)
}

func TestList_EmptyHasZeroPages(t *testing.T) {
	f := newFixture(t)

	out, err := f.service.List(f.ctx(appctx.RoleAdmin), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Total)
	assert.Equal(t, 0, out.Pages)
	assert.True(t, out.TotalSales.IsZero())
}

func TestExport_OneRowPerLine(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	fan := newTestProduct("Standing Fan", 5, "20.00", "30.00")
	f := newFixture(t, tv, fan)
	ctx := f.ctx(appctx.RoleAdmin)

	_, err := f.service.Create(ctx, CreateInput{
		CustomerName: "Ada",
		PaymentMode:  "Card",
		Items: []LineItem{
			{ProductRef: tv.ID.String(), Quantity: 2},
			{ProductRef: fan.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	rows, err := f.service.Export(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "LG TV", rows[0].ProductName)
	assert.Equal(t, "Standing Fan", rows[1].ProductName)
	assert.Equal(t, "Jane Doe", rows[0].SoldBy)
	require.NotNil(t, rows[0].CostPrice)
	require.NotNil(t, rows[0].Profit)
	assert.True(t, rows[0].Profit.Equal(types.MustMoney("100.00")))
}

func TestExport_StaffGetsNoCostColumns(t *testing.T) {
	tv := newTestProduct("LG TV", 10, "100.00", "150.00")
	f := newFixture(t, tv)
	ctx := f.ctx(appctx.RoleStaff)

	_, err := f.service.Create(ctx, CreateInput{
		PaymentMode: "Cash",
		Items:       []LineItem{{ProductRef: tv.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	rows, err := f.service.Export(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CostPrice)
	assert.Nil(t, rows[0].Profit)
}
