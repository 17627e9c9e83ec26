package sales

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/hugohenrick/erp-vendas/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-vendas/internal/application/stock"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/pricing"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tenantID = "tenant-a"

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *memory.Store
	manager *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	log := logger.NewNop()
	m := NewManager(s, stock.NewLedger(s, log), pricing.NewEngine(), Config{CardCommissionRate: decimal.RequireFromString("0.03")}, log)
	return &fixture{t: t, ctx: context.Background(), store: s, manager: m}
}

func (f *fixture) customer(tenant string, segment customer.Segment) *customer.Customer {
	f.t.Helper()
	c, err := customer.NewCustomer(tenant, "Cliente "+string(segment))
	require.NoError(f.t, err)
	require.NoError(f.t, c.ChangeSegment(segment))
	require.NoError(f.t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Customers().Create(ctx, c)
	}))
	return c
}

func (f *fixture) product(tenant, name string, price string, cost string, stockQty int) *product.Product {
	f.t.Helper()
	var nullCost decimal.NullDecimal
	if cost != "" {
		nullCost = decimal.NewNullDecimal(decimal.RequireFromString(cost))
	}
	p, err := product.NewProduct(tenant, name, decimal.RequireFromString(price), nullCost, stockQty)
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Products().Create(ctx, p)
	}))
	return p
}

func (f *fixture) stockOf(tenant, productID string) int {
	f.t.Helper()
	var qty int
	require.NoError(f.t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		p, err := repos.Products().FindByID(ctx, tenant, productID)
		if err != nil {
			return err
		}
		qty = p.Stock
		return nil
	}))
	return qty
}

func (f *fixture) saleCount(tenant, customerID string) int {
	f.t.Helper()
	var n int
	require.NoError(f.t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		list, err := repos.Sales().ListActiveByCustomer(ctx, tenant, customerID)
		n = len(list)
		return err
	}))
	return n
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateSaleAppliesPricingAndStock(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentGold)
	p := f.product(tenantID, "Azeite", "100", "95", 10)
	q := f.product(tenantID, "Vinagre", "20", "", 10)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{
		CustomerID: c.ID,
		Items: []ItemInput{
			{ProductID: p.ID, Quantity: 2},
			{ProductID: q.ID, Quantity: 1},
			{ProductName: "Frete", Quantity: 1, UnitPrice: decimal.NewNullDecimal(d("12.50"))},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, customer.SegmentGold, s.SegmentAtTime)
	assert.True(t, s.DiscountRateAtTime.Equal(d("0.10")))
	require.Len(t, s.Items, 3)

	// piso de custo: 100 × 0,9 = 90 < 95
	assert.True(t, s.Items[0].UnitPrice.Equal(d("95")))
	assert.True(t, s.Items[0].ListUnitPrice.Equal(d("100")))
	assert.Equal(t, "Azeite", s.Items[0].ProductName)
	assert.True(t, s.Items[1].UnitPrice.Equal(d("18")))
	assert.Nil(t, s.Items[2].ProductID)
	assert.True(t, s.Items[2].AppliedDiscountRate.IsZero())

	assert.True(t, s.TotalAmount.Equal(d("220.50")), "total %s", s.TotalAmount)
	assert.True(t, s.TotalAmount.Equal(sale.Total(s.Items)))

	assert.Equal(t, 8, f.stockOf(tenantID, p.ID))
	assert.Equal(t, 9, f.stockOf(tenantID, q.ID))
}

func TestCreateSaleIsAtomic(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	b := f.product(tenantID, "B", "10", "", 5)
	a := f.product(tenantID, "A", "10", "", 3)

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{
		CustomerID: c.ID,
		Items: []ItemInput{
			{ProductID: b.ID, Quantity: 1},
			{ProductID: a.ID, Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))

	var stockErr *product.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, a.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	assert.Equal(t, 5, f.stockOf(tenantID, b.ID))
	assert.Equal(t, 3, f.stockOf(tenantID, a.ID))
	assert.Zero(t, f.saleCount(tenantID, c.ID))
}

func TestCreateSaleSameProductTwiceChecksCumulativeStock(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 5)

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{
		CustomerID: c.ID,
		Items:      []ItemInput{{ProductID: p.ID, Quantity: 3}, {ProductID: p.ID, Quantity: 3}},
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 5, f.stockOf(tenantID, p.ID))
}

func TestCreateSaleValidation(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 5)

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID})
	assert.ErrorIs(t, err, sale.ErrEmptyItems)

	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: "nope", Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, customer.ErrNotFound)

	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 0}}})
	assert.ErrorIs(t, err, sale.ErrInvalidQuantity)

	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductName: "Livre", Quantity: 1}}})
	assert.ErrorIs(t, err, sale.ErrMissingUnitPrice)

	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{
		{ProductID: p.ID, Quantity: 1},
		{ProductName: "Serviço", Quantity: 3, UnitPrice: decimal.NewNullDecimal(d("0.335"))},
	}})
	assert.ErrorIs(t, err, shared.ErrMoneyPrecision)

	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Segment: "platinum", Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, customer.ErrInvalidSegment)

	assert.Equal(t, 5, f.stockOf(tenantID, p.ID))
}

func TestCreateSaleRejectsInactiveCustomer(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 5)

	c.Deactivate()
	require.NoError(t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Customers().Update(ctx, c)
	}))

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, customer.ErrInactive)
}

func TestCreateSaleExplicitSegmentOverridesCustomer(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "100", "", 5)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{
		CustomerID: c.ID,
		Segment:    customer.SegmentSilver,
		Items:      []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, customer.SegmentSilver, s.SegmentAtTime)
	assert.True(t, s.TotalAmount.Equal(d("95")))
}

func TestCrossTenantProductIsNotFound(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	foreign := f.product("tenant-b", "Outro", "10", "", 100)

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: foreign.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, product.ErrNotFound)
	assert.Equal(t, 100, f.stockOf("tenant-b", foreign.ID))
}

func TestCrossTenantCustomerIsNotFound(t *testing.T) {
	f := newFixture(t)
	foreign := f.customer("tenant-b", customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 5)

	_, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: foreign.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, customer.ErrNotFound)

	_, err = f.manager.AddCollection(f.ctx, tenantID, CollectionInput{CustomerID: foreign.ID, Method: collection.MethodCash, GrossAmount: d("10")})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestUpdateSaleReversesBeforeReapplying(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 10)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 4}}})
	require.NoError(t, err)
	assert.Equal(t, 6, f.stockOf(tenantID, p.ID))

	updated, err := f.manager.UpdateSale(f.ctx, tenantID, s.ID, []ItemInput{{ProductID: p.ID, Quantity: 7}})
	require.NoError(t, err)
	assert.Equal(t, 3, f.stockOf(tenantID, p.ID))
	assert.True(t, updated.TotalAmount.Equal(d("70")))

	stored, err := f.manager.GetSale(f.ctx, tenantID, s.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 7, stored.Items[0].Quantity)
	assert.True(t, stored.TotalAmount.Equal(sale.Total(stored.Items)))
}

func TestUpdateSaleFailureKeepsPreviousState(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 10)
	q := f.product(tenantID, "Q", "10", "", 1)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 4}}})
	require.NoError(t, err)

	_, err = f.manager.UpdateSale(f.ctx, tenantID, s.ID, []ItemInput{{ProductID: p.ID, Quantity: 2}, {ProductID: q.ID, Quantity: 2}})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)

	assert.Equal(t, 6, f.stockOf(tenantID, p.ID))
	assert.Equal(t, 1, f.stockOf(tenantID, q.ID))

	stored, err := f.manager.GetSale(f.ctx, tenantID, s.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 4, stored.Items[0].Quantity)
	assert.True(t, stored.TotalAmount.Equal(d("40")))
}

func TestUpdateSaleKeepsRecordedDiscount(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentGold)
	p := f.product(tenantID, "P", "100", "", 10)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)

	require.NoError(t, c.ChangeSegment(customer.SegmentBronze))
	require.NoError(t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Customers().Update(ctx, c)
	}))

	updated, err := f.manager.UpdateSale(f.ctx, tenantID, s.ID, []ItemInput{{ProductID: p.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, customer.SegmentGold, updated.SegmentAtTime)
	assert.True(t, updated.TotalAmount.Equal(d("180")))
}

func TestUpdateSaleErrors(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 10)

	_, err := f.manager.UpdateSale(f.ctx, tenantID, "missing", []ItemInput{{ProductID: p.ID, Quantity: 1}})
	assert.ErrorIs(t, err, sale.ErrNotFound)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.manager.UpdateSale(f.ctx, "tenant-b", s.ID, []ItemInput{{ProductID: p.ID, Quantity: 1}})
	assert.ErrorIs(t, err, sale.ErrNotFound)

	_, err = f.manager.UpdateSale(f.ctx, tenantID, s.ID, nil)
	assert.ErrorIs(t, err, sale.ErrEmptyItems)

	require.NoError(t, f.manager.CancelSale(f.ctx, tenantID, s.ID))
	_, err = f.manager.UpdateSale(f.ctx, tenantID, s.ID, []ItemInput{{ProductID: p.ID, Quantity: 1}})
	assert.ErrorIs(t, err, sale.ErrSaleAlreadyCancelled)
	assert.Equal(t, 10, f.stockOf(tenantID, p.ID))
}

func TestCancelSaleRestoresStockAndKeepsRows(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 10)

	s, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{
		CustomerID: c.ID,
		Items:      []ItemInput{{ProductID: p.ID, Quantity: 4}, {ProductName: "Serviço", Quantity: 1, UnitPrice: decimal.NewNullDecimal(d("5"))}},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.stockOf(tenantID, p.ID))

	require.NoError(t, f.manager.CancelSale(f.ctx, tenantID, s.ID))
	assert.Equal(t, 10, f.stockOf(tenantID, p.ID))

	stored, err := f.manager.GetSale(f.ctx, tenantID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.StatusCancelled, stored.Status)
	assert.Len(t, stored.Items, 2)
	assert.True(t, stored.TotalAmount.Equal(d("45")))

	err = f.manager.CancelSale(f.ctx, tenantID, s.ID)
	assert.ErrorIs(t, err, sale.ErrSaleAlreadyCancelled)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 10, f.stockOf(tenantID, p.ID))

	assert.ErrorIs(t, f.manager.CancelSale(f.ctx, tenantID, "missing"), sale.ErrNotFound)
}

func TestStockInvariantAfterSequence(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 50)

	s1, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 5}}})
	require.NoError(t, err)
	s2, err := f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 7}}})
	require.NoError(t, err)
	_, err = f.manager.UpdateSale(f.ctx, tenantID, s1.ID, []ItemInput{{ProductID: p.ID, Quantity: 2}, {ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, f.manager.CancelSale(f.ctx, tenantID, s2.ID))
	_, err = f.manager.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 10}}})
	require.NoError(t, err)

	var sold int
	require.NoError(t, f.store.Transaction(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		list, err := repos.Sales().ListActiveByCustomer(ctx, tenantID, c.ID)
		for _, s := range list {
			for _, it := range s.Items {
				if it.TracksStock() && *it.ProductID == p.ID {
					sold += it.Quantity
				}
			}
		}
		return err
	}))
	assert.Equal(t, 13, sold)
	assert.Equal(t, 50-sold, f.stockOf(tenantID, p.ID))
}

func TestReturnsDoNotTouchStock(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	p := f.product(tenantID, "P", "10", "", 10)

	r, err := f.manager.CreateReturn(f.ctx, tenantID, ReturnInput{
		CustomerID: c.ID,
		Note:       "avaria",
		Items:      []ReturnItemInput{{ProductName: "P", Quantity: 2, UnitPrice: d("10")}},
	})
	require.NoError(t, err)
	assert.True(t, r.TotalAmount.Equal(d("20")))
	assert.Equal(t, 10, f.stockOf(tenantID, p.ID))

	updated, err := f.manager.UpdateReturn(f.ctx, tenantID, r.ID, []ReturnItemInput{
		{ProductName: "P", Quantity: 1, UnitPrice: d("10")},
		{ProductName: "Q", Quantity: 3, UnitPrice: d("2.5")},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(d("17.5")))

	stored, err := f.manager.GetReturn(f.ctx, tenantID, r.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)

	require.NoError(t, f.manager.DeleteReturn(f.ctx, tenantID, r.ID))
	_, err = f.manager.GetReturn(f.ctx, tenantID, r.ID)
	assert.ErrorIs(t, err, salesreturn.ErrNotFound)
	assert.ErrorIs(t, f.manager.DeleteReturn(f.ctx, tenantID, r.ID), salesreturn.ErrNotFound)
	assert.Equal(t, 10, f.stockOf(tenantID, p.ID))
}

func TestReturnValidation(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)

	_, err := f.manager.CreateReturn(f.ctx, tenantID, ReturnInput{CustomerID: c.ID})
	assert.ErrorIs(t, err, salesreturn.ErrEmptyItems)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = f.manager.CreateReturn(f.ctx, tenantID, ReturnInput{CustomerID: "x", Items: []ReturnItemInput{{ProductName: "a", Quantity: 1, UnitPrice: d("1")}}})
	assert.ErrorIs(t, err, customer.ErrNotFound)

	r, err := f.manager.CreateReturn(f.ctx, tenantID, ReturnInput{CustomerID: c.ID, Items: []ReturnItemInput{{ProductName: "a", Quantity: 1, UnitPrice: d("1")}}})
	require.NoError(t, err)

	_, err = f.manager.UpdateReturn(f.ctx, tenantID, r.ID, []ReturnItemInput{{ProductName: "a", Quantity: 0, UnitPrice: d("1")}})
	assert.ErrorIs(t, err, salesreturn.ErrInvalidQuantity)

	stored, err := f.manager.GetReturn(f.ctx, tenantID, r.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(d("1")))

	_, err = f.manager.UpdateReturn(f.ctx, "tenant-b", r.ID, []ReturnItemInput{{ProductName: "a", Quantity: 1, UnitPrice: d("1")}})
	assert.ErrorIs(t, err, salesreturn.ErrNotFound)
}

func TestAddCollectionNetsCardCommission(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)

	col, err := f.manager.AddCollection(f.ctx, tenantID, CollectionInput{
		CustomerID:  c.ID,
		Method:      collection.MethodCard,
		GrossAmount: d("100"),
		Note:        "visa",
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, col.Amount.Equal(d("97")))
	assert.True(t, col.Commission.Equal(d("3")))

	_, err = f.manager.AddCollection(f.ctx, tenantID, CollectionInput{CustomerID: c.ID, Method: collection.MethodCash, GrossAmount: d("-1")})
	assert.ErrorIs(t, err, collection.ErrInvalidAmount)

	require.NoError(t, f.manager.DeleteCollection(f.ctx, tenantID, col.ID))
	assert.ErrorIs(t, f.manager.DeleteCollection(f.ctx, tenantID, col.ID), collection.ErrNotFound)
}

func TestQuoteDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentSilver)
	p := f.product(tenantID, "P", "100", "97", 4)

	q, err := f.manager.Quote(f.ctx, tenantID, QuoteInput{CustomerID: c.ID, Items: []ItemInput{{ProductID: p.ID, Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, customer.SegmentSilver, q.Segment)
	require.Len(t, q.Lines, 1)
	assert.True(t, q.Lines[0].UnitPrice.Equal(d("97")))
	assert.True(t, q.Lines[0].CostFloorApplied)
	assert.Equal(t, 4, *q.Lines[0].Available)
	assert.True(t, q.Total.Equal(d("194")))

	// recomputado ao trocar o segmento durante a composição
	q, err = f.manager.Quote(f.ctx, tenantID, QuoteInput{CustomerID: c.ID, Segment: customer.SegmentBronze, Items: []ItemInput{{ProductID: p.ID, Quantity: 2}}})
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(d("200")))

	assert.Equal(t, 4, f.stockOf(tenantID, p.ID))
	assert.Zero(t, f.saleCount(tenantID, c.ID))
}

// lockingTx registra a ordem em que os produtos são bloqueados
type lockingTx struct {
	inner  store.TxManager
	locked []string
}

func (l *lockingTx) Transaction(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	return l.inner.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return fn(ctx, lockingRepos{Repositories: repos, tx: l})
	})
}

type lockingRepos struct {
	store.Repositories
	tx *lockingTx
}

func (r lockingRepos) Products() product.Repository {
	return lockingProducts{Repository: r.Repositories.Products(), tx: r.tx}
}

type lockingProducts struct {
	product.Repository
	tx *lockingTx
}

func (p lockingProducts) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*product.Product, error) {
	p.tx.locked = append(p.tx.locked, id)
	return p.Repository.FindByIDForUpdate(ctx, tenantID, id)
}

func TestSalesLockProductsInIDOrder(t *testing.T) {
	f := newFixture(t)
	c := f.customer(tenantID, customer.SegmentBronze)
	a := f.product(tenantID, "A", "10", "", 10)
	b := f.product(tenantID, "B", "10", "", 10)
	x := f.product(tenantID, "X", "10", "", 10)

	tx := &lockingTx{inner: f.store}
	log := logger.NewNop()
	m := NewManager(tx, stock.NewLedger(tx, log), pricing.NewEngine(), Config{}, log)

	sorted := func(ids ...string) []string {
		out := append([]string(nil), ids...)
		sort.Strings(out)
		return out
	}

	// linhas em ordem decrescente de ID
	ids := sorted(a.ID, b.ID)
	s, err := m.CreateSale(f.ctx, tenantID, SaleInput{CustomerID: c.ID, Items: []ItemInput{
		{ProductID: ids[1], Quantity: 1},
		{ProductID: ids[0], Quantity: 1},
	}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tx.locked), 2)
	assert.Equal(t, ids, tx.locked[:2])

	tx.locked = nil
	_, err = m.UpdateSale(f.ctx, tenantID, s.ID, []ItemInput{{ProductID: x.ID, Quantity: 1}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tx.locked), 3)
	assert.Equal(t, sorted(a.ID, b.ID, x.ID), tx.locked[:3])
}
