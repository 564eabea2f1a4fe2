package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/memory"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store sales.Store
	query sales.Query
}

func setupFixture(t *testing.T) *fixture {
	s, err := memory.NewSalesStore(testutil.StoreSnapshot(testutil.Now))
	require.NoError(t, err)

	return &fixture{
		store: s,
		query: sales.Query{Start: testutil.Now.AddDate(0, 0, -30), End: testutil.Now},
	}
}

func TestSalesStore_GetOrderTotals(t *testing.T) {
	f := setupFixture(t)

	totals, err := f.store.GetOrderTotals(context.Background(), f.query)
	require.NoError(t, err)

	assert.Equal(t, int64(5), totals.TotalOrders)
	assert.Equal(t, int64(4), totals.CompletedOrders)
	assert.Equal(t, "1960", totals.Revenue.String())
	assert.Equal(t, int64(23), totals.UnitsSold)
	assert.Equal(t, int64(4), totals.ProductsSold)
}

func TestSalesStore_Filters(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("statuses narrow orders", func(t *testing.T) {
		q := f.query
		q.Filters = domain.Filters{Statuses: []domain.OrderStatus{domain.OrderStatusDelivered}}

		totals, err := f.store.GetOrderTotals(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.TotalOrders)
		assert.Equal(t, "1300", totals.Revenue.String())
	})

	t.Run("categories narrow orders and lines", func(t *testing.T) {
		q := f.query
		q.Filters = domain.Filters{CategoryIDs: []string{"c-home"}}

		totals, err := f.store.GetOrderTotals(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), totals.TotalOrders)
		assert.Equal(t, int64(2), totals.UnitsSold)

		rows, err := f.store.GetTopProducts(ctx, q, sales.TopProductsOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "p-2", rows[0].ProductID)
	})
}

func TestSalesStore_GetTopProducts(t *testing.T) {
	f := setupFixture(t)

	rows, err := f.store.GetTopProducts(context.Background(), f.query, sales.TopProductsOptions{Limit: 3})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "p-3", rows[0].ProductID)
	assert.Equal(t, int64(18), rows[0].UnitsSold)
	// p-1 and p-2 tie on units, the id breaks the tie
	assert.Equal(t, "p-1", rows[1].ProductID)
	assert.Equal(t, "p-2", rows[2].ProductID)
}

func TestSalesStore_GetTopCustomers(t *testing.T) {
	f := setupFixture(t)

	rows, err := f.store.GetTopCustomers(context.Background(), f.query, 10)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "cu-2", rows[0].CustomerID)
	assert.Equal(t, "1200", rows[0].TotalSpent.String())
	assert.Equal(t, "cu-1", rows[1].CustomerID)
	assert.Equal(t, int64(2), rows[1].OrderCount)
	assert.Equal(t, "cu-3", rows[2].CustomerID)
}

func TestSalesStore_GetCategorySales(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rows, err := f.store.GetCategorySales(ctx, f.query, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c-elec", rows[0].CategoryID)
	assert.Equal(t, "1900", rows[0].Revenue.String())
	assert.Equal(t, int64(20), rows[0].Quantity)
	assert.Equal(t, int64(2), rows[0].ProductCount)

	withEmpty, err := f.store.GetCategorySales(ctx, f.query, true)
	require.NoError(t, err)
	require.Len(t, withEmpty, 3)
	assert.Equal(t, "c-toys", withEmpty[2].CategoryID)
	assert.True(t, withEmpty[2].Revenue.IsZero())
}

func TestSalesStore_GetStatusBreakdown(t *testing.T) {
	f := setupFixture(t)

	rows, err := f.store.GetStatusBreakdown(context.Background(), f.query)
	require.NoError(t, err)

	counts := map[string]int64{}
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.Count
		total += r.Count
	}
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(2), counts["DELIVERED"])
	assert.Equal(t, int64(1), counts["CANCELLED"])
}

func TestSalesStore_Customers(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	counts, err := f.store.GetCustomerCounts(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)
	assert.Equal(t, int64(2), counts.New)

	repeat, err := f.store.GetRepeatCustomerCounts(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), repeat.WithOrders)
	assert.Equal(t, int64(1), repeat.Repeat)

	regions, err := f.store.GetCustomersByRegion(ctx, f.query, 10)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "Jalisco", regions[0].Region)
	assert.Equal(t, int64(2), regions[0].Customers)
}

func TestSalesStore_GetInventoryStats(t *testing.T) {
	f := setupFixture(t)

	row, err := f.store.GetInventoryStats(context.Background(), f.query, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(4), row.Active)
	assert.Equal(t, int64(2), row.LowStock)
	assert.Equal(t, int64(1), row.OutOfStock)
	assert.Equal(t, "32.5", row.AverageStock.String())
}

func TestSalesStore_Financials(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	payments, err := f.store.GetPaymentStatusBreakdown(ctx, f.query)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "PAID", payments[0].Status)
	assert.Equal(t, int64(3), payments[0].Count)
	assert.Equal(t, "1900", payments[0].Amount.String())

	cancelled, err := f.store.GetCancelledTotals(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled.Orders)
	assert.Equal(t, "50", cancelled.Amount.String())
}

func TestSalesStore_Orders(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	bands, err := f.store.GetOrderSizeDistribution(ctx, f.query, []float64{0, 100, 500, 1000, 5000})
	require.NoError(t, err)
	got := map[int]int64{}
	for _, b := range bands {
		got[b.Band] = b.Count
	}
	assert.Equal(t, map[int]int64{0: 1, 1: 1, 2: 1, 3: 1}, got)

	fulfillment, err := f.store.GetFulfillmentStats(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fulfillment.Orders)
	assert.Equal(t, "36", fulfillment.AverageHours.String())

	daily, err := f.store.GetDailySales(ctx, f.query)
	require.NoError(t, err)
	require.Len(t, daily, 4)
	assert.True(t, daily[0].Day.Before(daily[1].Day))
	assert.Equal(t, time.UTC, daily[0].Day.Location())
}

func TestLoad(t *testing.T) {
	raw := `{
		"products": [{"id": "p-1", "name": "Audífonos", "price": "50.00", "stock": 3, "active": true}],
		"orders": [{"id": "o-1", "customerId": "cu-1", "status": "DELIVERED", "paymentStatus": "PAID",
			"total": 50, "createdAt": "2025-06-01T10:00:00Z",
			"items": [{"productId": "p-1", "quantity": 1, "unitPrice": "50.00"}]}]
	}`

	snap, err := memory.Load(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, domain.OrderStatusDelivered, snap.Orders[0].Status)
	assert.Equal(t, "50", snap.Orders[0].Total.String())

	_, err = memory.Load(strings.NewReader("{"))
	assert.Error(t, err)
}
