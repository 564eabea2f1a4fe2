package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store sales.Store
	query sales.Query
}

func setupFixture(t *testing.T) *fixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	s, err := NewSalesStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	end := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &fixture{
		db:    db,
		mock:  mock,
		store: s,
		query: sales.Query{Start: end.AddDate(0, 0, -30), End: end},
	}
}

func TestNewSalesStore_NilDB(t *testing.T) {
	_, err := NewSalesStore(nil)
	assert.Error(t, err)
}

func TestSalesStore_GetOrderTotals(t *testing.T) {
	f := setupFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN LATERAL")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"count", "completed", "revenue", "units", "products"}).
			AddRow(int64(3), int64(2), "150.00", int64(4), int64(2)))

	totals, err := f.store.GetOrderTotals(context.Background(), f.query)
	require.NoError(t, err)

	assert.Equal(t, int64(3), totals.TotalOrders)
	assert.Equal(t, int64(2), totals.CompletedOrders)
	assert.Equal(t, "150", totals.Revenue.String())
	assert.Equal(t, int64(4), totals.UnitsSold)
	assert.Equal(t, int64(2), totals.ProductsSold)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_GetOrderTotals_Filters(t *testing.T) {
	f := setupFixture(t)
	q := f.query
	q.Filters = domain.Filters{
		Statuses:    []domain.OrderStatus{domain.OrderStatusDelivered},
		CategoryIDs: []string{"c-home"},
	}

	f.mock.ExpectQuery(`o\.status = ANY\(\$3\)[\s\S]*fp\.category_id = ANY\(\$4\)[\s\S]*p\.category_id = ANY\(\$5\)`).
		WithArgs(q.Start, q.End, pq.Array([]string{"DELIVERED"}), pq.Array([]string{"c-home"}), pq.Array([]string{"c-home"})).
		WillReturnRows(sqlmock.NewRows([]string{"count", "completed", "revenue", "units", "products"}).
			AddRow(int64(1), int64(1), "50.00", int64(2), int64(1)))

	totals, err := f.store.GetOrderTotals(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.TotalOrders)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_GetTopProducts(t *testing.T) {
	tests := []struct {
		name    string
		opts    sales.TopProductsOptions
		pattern string
	}{
		{
			name:    "by units",
			opts:    sales.TopProductsOptions{Limit: 10},
			pattern: `ORDER BY units DESC, oi\.product_id\s+LIMIT \$3`,
		},
		{
			name:    "active products by revenue",
			opts:    sales.TopProductsOptions{Limit: 20, By: sales.RankByRevenue, ActiveOnly: true},
			pattern: `p\.is_active[\s\S]*ORDER BY revenue DESC, oi\.product_id\s+LIMIT \$3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			f.mock.ExpectQuery(tt.pattern).
				WithArgs(f.query.Start, f.query.End, tt.opts.Limit).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "units", "revenue"}).
					AddRow("p-3", int64(18), "1800.00").
					AddRow("p-1", int64(2), "100.00"))

			rows, err := f.store.GetTopProducts(context.Background(), f.query, tt.opts)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, "p-3", rows[0].ProductID)
			assert.Equal(t, int64(18), rows[0].UnitsSold)
			assert.Equal(t, "1800", rows[0].Revenue.String())
			assert.NoError(t, f.mock.ExpectationsWereMet())
		})
	}
}

func TestSalesStore_GetProductsByIDs(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("empty ids skip the query", func(t *testing.T) {
		rows, err := f.store.GetProductsByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("single batched lookup", func(t *testing.T) {
		f.mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = ANY($1)")).
			WithArgs(pq.Array([]string{"p-1", "p-2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "category", "price", "stock", "is_active"}).
				AddRow("p-1", "Audífonos", "c-elec", "Electrónica", "50.00", int64(25), true).
				AddRow("p-2", "Lámpara", "c-home", "Hogar", "25.00", int64(5), true))

		rows, err := f.store.GetProductsByIDs(ctx, []string{"p-1", "p-2"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Electrónica", rows[0].Category)
		assert.Equal(t, "25", rows[1].Price.String())
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestSalesStore_GetCategorySales(t *testing.T) {
	cols := []string{"id", "name", "revenue", "quantity", "products"}

	t.Run("only categories with sales", func(t *testing.T) {
		f := setupFixture(t)
		f.mock.ExpectQuery(`FROM \(\s+SELECT[\s\S]*JOIN categories c ON c\.id = s\.category_id`).
			WithArgs(f.query.Start, f.query.End).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("c-elec", "Electrónica", "1900.00", int64(20), int64(2)))

		rows, err := f.store.GetCategorySales(context.Background(), f.query, false)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].ProductCount)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("every active category", func(t *testing.T) {
		f := setupFixture(t)
		f.mock.ExpectQuery(`FROM categories c\s+LEFT JOIN[\s\S]*WHERE c\.is_active`).
			WithArgs(f.query.Start, f.query.End).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("c-elec", "Electrónica", "1900.00", int64(20), int64(2)).
				AddRow("c-toys", "Juguetes", "0", int64(0), int64(0)))

		rows, err := f.store.GetCategorySales(context.Background(), f.query, true)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.True(t, rows[1].Revenue.IsZero())
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestSalesStore_GetStatusBreakdown(t *testing.T) {
	f := setupFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("GROUP BY o.status")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "revenue"}).
			AddRow("CANCELLED", int64(1), "50.00").
			AddRow("DELIVERED", int64(2), "150.00"))

	rows, err := f.store.GetStatusBreakdown(context.Background(), f.query)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "DELIVERED", rows[1].Status)
	assert.Equal(t, "150", rows[1].Revenue.String())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_Customers(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.mock.ExpectQuery(regexp.QuoteMeta("FROM customers")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"total", "new"}).AddRow(int64(40), int64(6)))
	f.mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE c.orders > 1)")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"with_orders", "repeat"}).AddRow(int64(12), int64(3)))
	f.mock.ExpectQuery(regexp.QuoteMeta("JOIN addresses a")).
		WithArgs(f.query.Start, f.query.End, 10).
		WillReturnRows(sqlmock.NewRows([]string{"state", "customers"}).AddRow("Jalisco", int64(7)))

	counts, err := f.store.GetCustomerCounts(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(40), counts.Total)
	assert.Equal(t, int64(6), counts.New)

	repeat, err := f.store.GetRepeatCustomerCounts(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), repeat.Repeat)

	regions, err := f.store.GetCustomersByRegion(ctx, f.query, 10)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Jalisco", regions[0].Region)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_GetInventoryStats(t *testing.T) {
	f := setupFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE p.stock < $1)")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"active", "low", "out", "avg"}).
			AddRow(int64(4), int64(2), int64(1), "32.50"))

	row, err := f.store.GetInventoryStats(context.Background(), f.query, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.LowStock)
	assert.Equal(t, "32.5", row.AverageStock.String())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_Financials(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	f.mock.ExpectQuery(regexp.QuoteMeta("GROUP BY o.payment_status")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "amount"}).AddRow("PAID", int64(3), "1900.00"))
	f.mock.ExpectQuery(regexp.QuoteMeta("o.status = 'CANCELLED'")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"count", "amount"}).AddRow(int64(1), "50.00"))

	payments, err := f.store.GetPaymentStatusBreakdown(ctx, f.query)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "PAID", payments[0].Status)

	cancelled, err := f.store.GetCancelledTotals(ctx, f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled.Orders)
	assert.Equal(t, "50", cancelled.Amount.String())

	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_GetOrderSizeDistribution(t *testing.T) {
	f := setupFixture(t)
	bounds := []float64{0, 100, 500}

	f.mock.ExpectQuery(regexp.QuoteMeta("WHEN o.total >= $3 AND o.total < $4 THEN 0 WHEN o.total >= $5 AND o.total < $6 THEN 1 WHEN o.total >= $7 THEN 2")).
		WithArgs(f.query.Start, f.query.End, 0.0, 100.0, 100.0, 500.0, 500.0).
		WillReturnRows(sqlmock.NewRows([]string{"band", "count", "revenue"}).
			AddRow(0, int64(1), "60.00").
			AddRow(2, int64(2), "1800.00"))

	rows, err := f.store.GetOrderSizeDistribution(context.Background(), f.query, bounds)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1].Band)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	_, err = f.store.GetOrderSizeDistribution(context.Background(), f.query, nil)
	assert.Error(t, err)
}

func TestSalesStore_GetFulfillmentStats(t *testing.T) {
	f := setupFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("EXTRACT(EPOCH FROM (o.delivered_at - o.created_at))")).
		WithArgs(f.query.Start, f.query.End).
		WillReturnRows(sqlmock.NewRows([]string{"count", "hours"}).AddRow(int64(2), "36"))

	row, err := f.store.GetFulfillmentStats(context.Background(), f.query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.Orders)
	assert.Equal(t, "36", row.AverageHours.String())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSalesStore_QueryError(t *testing.T) {
	f := setupFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("GROUP BY day")).
		WillReturnError(fmt.Errorf("connection reset"))

	_, err := f.store.GetDailySales(context.Background(), f.query)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily sales query failed")
}
