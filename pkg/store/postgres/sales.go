package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

const notCancelled = "o.status <> 'CANCELLED'"

type salesStore struct {
	db *sql.DB
}

func NewSalesStore(db *sql.DB) (sales.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &salesStore{db: db}, nil
}

func closeRows(ctx context.Context, rows *sql.Rows, query string) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("failed to close query rows")
	}
}

func (s *salesStore) GetOrderTotals(ctx context.Context, q sales.Query) (store.OrderTotals, error) {
	sc := &scope{}
	where := sc.orders(q)
	lines := sc.lines(q)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE %[1]s),
			COALESCE(SUM(o.total) FILTER (WHERE %[1]s), 0),
			COALESCE(SUM(u.units) FILTER (WHERE %[1]s), 0),
			(
				SELECT COUNT(DISTINCT oi.product_id)
				FROM order_items oi
				JOIN orders o ON o.id = oi.order_id
				JOIN products p ON p.id = oi.product_id
				WHERE %[3]s AND %[1]s%[2]s
			)
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT SUM(oi.quantity) AS units
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id%[2]s
		) u ON true
		WHERE %[3]s`, notCancelled, lines, where)

	var totals store.OrderTotals
	err := s.db.QueryRowContext(ctx, query, sc.args...).Scan(
		&totals.TotalOrders, &totals.CompletedOrders, &totals.Revenue, &totals.UnitsSold, &totals.ProductsSold,
	)
	if err != nil {
		return store.OrderTotals{}, fmt.Errorf("order totals query failed: %w", err)
	}
	return totals, nil
}

func (s *salesStore) GetTopProducts(ctx context.Context, q sales.Query, opts sales.TopProductsOptions) ([]store.ProductSalesRow, error) {
	sc := &scope{}
	where := sc.orders(q) + sc.lines(q)
	if opts.ActiveOnly {
		where += " AND p.is_active"
	}
	orderBy := "units DESC"
	if opts.By == sales.RankByRevenue {
		orderBy = "revenue DESC"
	}
	query := fmt.Sprintf(`
		SELECT
			oi.product_id,
			SUM(oi.quantity) AS units,
			SUM(oi.quantity * oi.unit_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE %s AND %s
		GROUP BY oi.product_id
		ORDER BY %s, oi.product_id
		LIMIT %s`, where, notCancelled, orderBy, sc.arg(opts.Limit))

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("top products query failed: %w", err)
	}
	defer closeRows(ctx, rows, "top products")

	var result []store.ProductSalesRow
	for rows.Next() {
		var r store.ProductSalesRow
		if err := rows.Scan(&r.ProductID, &r.UnitsSold, &r.Revenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetProductsByIDs(ctx context.Context, ids []string) ([]store.ProductRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT
			p.id,
			p.name,
			COALESCE(p.category_id, ''),
			COALESCE(c.name, ''),
			p.price,
			p.stock,
			p.is_active
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("products lookup failed: %w", err)
	}
	defer closeRows(ctx, rows, "products lookup")

	var result []store.ProductRow
	for rows.Next() {
		var r store.ProductRow
		if err := rows.Scan(&r.ID, &r.Name, &r.CategoryID, &r.Category, &r.Price, &r.Stock, &r.Active); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetTopCustomers(ctx context.Context, q sales.Query, limit int) ([]store.CustomerSpendRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			cu.id,
			cu.name,
			cu.email,
			SUM(o.total) AS spent,
			COUNT(*)
		FROM orders o
		JOIN customers cu ON cu.id = o.customer_id
		WHERE %s AND %s
		GROUP BY cu.id, cu.name, cu.email
		HAVING SUM(o.total) > 0
		ORDER BY spent DESC, cu.id
		LIMIT %s`, sc.orders(q), notCancelled, sc.arg(limit))

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("top customers query failed: %w", err)
	}
	defer closeRows(ctx, rows, "top customers")

	var result []store.CustomerSpendRow
	for rows.Next() {
		var r store.CustomerSpendRow
		if err := rows.Scan(&r.CustomerID, &r.Name, &r.Email, &r.TotalSpent, &r.OrderCount); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetDailySales(ctx context.Context, q sales.Query) ([]store.DailySalesRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			date_trunc('day', o.created_at AT TIME ZONE 'UTC') AS day,
			SUM(o.total),
			COUNT(*)
		FROM orders o
		WHERE %s AND %s
		GROUP BY day
		ORDER BY day`, sc.orders(q), notCancelled)

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("daily sales query failed: %w", err)
	}
	defer closeRows(ctx, rows, "daily sales")

	var result []store.DailySalesRow
	for rows.Next() {
		var r store.DailySalesRow
		if err := rows.Scan(&r.Day, &r.Revenue, &r.Orders); err != nil {
			return nil, err
		}
		r.Day = r.Day.UTC()
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetCategorySales(ctx context.Context, q sales.Query, includeEmpty bool) ([]store.CategorySalesRow, error) {
	sc := &scope{}
	sold := fmt.Sprintf(`
		SELECT
			p.category_id,
			SUM(oi.quantity * oi.unit_price) AS revenue,
			SUM(oi.quantity) AS quantity,
			COUNT(DISTINCT oi.product_id) AS products
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE %s AND %s AND p.category_id IS NOT NULL%s
		GROUP BY p.category_id`, sc.orders(q), notCancelled, sc.lines(q))

	var query string
	if includeEmpty {
		categories := ""
		if len(q.Filters.CategoryIDs) > 0 {
			categories = fmt.Sprintf(" AND c.id = ANY(%s)", sc.arg(pq.Array(q.Filters.CategoryIDs)))
		}
		query = fmt.Sprintf(`
		SELECT
			c.id,
			c.name,
			COALESCE(s.revenue, 0) AS revenue,
			COALESCE(s.quantity, 0),
			COALESCE(s.products, 0)
		FROM categories c
		LEFT JOIN (%s) s ON s.category_id = c.id
		WHERE c.is_active%s
		ORDER BY revenue DESC, c.name`, sold, categories)
	} else {
		query = fmt.Sprintf(`
		SELECT
			c.id,
			c.name,
			s.revenue,
			s.quantity,
			s.products
		FROM (%s) s
		JOIN categories c ON c.id = s.category_id
		ORDER BY s.revenue DESC, c.name`, sold)
	}

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("category sales query failed: %w", err)
	}
	defer closeRows(ctx, rows, "category sales")

	var result []store.CategorySalesRow
	for rows.Next() {
		var r store.CategorySalesRow
		if err := rows.Scan(&r.CategoryID, &r.Category, &r.Revenue, &r.Quantity, &r.ProductCount); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetStatusBreakdown(ctx context.Context, q sales.Query) ([]store.StatusRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			o.status,
			COUNT(*),
			COALESCE(SUM(o.total), 0)
		FROM orders o
		WHERE %s
		GROUP BY o.status
		ORDER BY o.status`, sc.orders(q))

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("status breakdown query failed: %w", err)
	}
	defer closeRows(ctx, rows, "status breakdown")

	var result []store.StatusRow
	for rows.Next() {
		var r store.StatusRow
		if err := rows.Scan(&r.Status, &r.Count, &r.Revenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetCustomerCounts(ctx context.Context, q sales.Query) (store.CustomerCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE created_at <= $2),
			COUNT(*) FILTER (WHERE created_at BETWEEN $1 AND $2)
		FROM customers`

	var counts store.CustomerCounts
	if err := s.db.QueryRowContext(ctx, query, q.Start, q.End).Scan(&counts.Total, &counts.New); err != nil {
		return store.CustomerCounts{}, fmt.Errorf("customer counts query failed: %w", err)
	}
	return counts, nil
}

func (s *salesStore) GetRepeatCustomerCounts(ctx context.Context, q sales.Query) (store.RepeatCounts, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE c.orders > 1)
		FROM (
			SELECT o.customer_id, COUNT(*) AS orders
			FROM orders o
			WHERE %s AND %s
			GROUP BY o.customer_id
		) c`, sc.orders(q), notCancelled)

	var counts store.RepeatCounts
	if err := s.db.QueryRowContext(ctx, query, sc.args...).Scan(&counts.WithOrders, &counts.Repeat); err != nil {
		return store.RepeatCounts{}, fmt.Errorf("repeat customers query failed: %w", err)
	}
	return counts, nil
}

func (s *salesStore) GetCustomersByRegion(ctx context.Context, q sales.Query, limit int) ([]store.RegionRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			a.state,
			COUNT(DISTINCT o.customer_id) AS customers
		FROM orders o
		JOIN addresses a ON a.customer_id = o.customer_id AND a.is_default
		WHERE %s AND %s AND a.state <> ''
		GROUP BY a.state
		ORDER BY customers DESC, a.state
		LIMIT %s`, sc.orders(q), notCancelled, sc.arg(limit))

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("customers by region query failed: %w", err)
	}
	defer closeRows(ctx, rows, "customers by region")

	var result []store.RegionRow
	for rows.Next() {
		var r store.RegionRow
		if err := rows.Scan(&r.Region, &r.Customers); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetInventoryStats(ctx context.Context, q sales.Query, lowStockThreshold int64) (store.InventoryRow, error) {
	sc := &scope{}
	threshold := sc.arg(lowStockThreshold)
	categories := ""
	if len(q.Filters.CategoryIDs) > 0 {
		categories = fmt.Sprintf(" AND p.category_id = ANY(%s)", sc.arg(pq.Array(q.Filters.CategoryIDs)))
	}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE p.stock < %s),
			COUNT(*) FILTER (WHERE p.stock = 0),
			COALESCE(AVG(p.stock), 0)
		FROM products p
		WHERE p.is_active%s`, threshold, categories)

	var row store.InventoryRow
	err := s.db.QueryRowContext(ctx, query, sc.args...).Scan(&row.Active, &row.LowStock, &row.OutOfStock, &row.AverageStock)
	if err != nil {
		return store.InventoryRow{}, fmt.Errorf("inventory query failed: %w", err)
	}
	return row, nil
}

func (s *salesStore) GetPaymentStatusBreakdown(ctx context.Context, q sales.Query) ([]store.PaymentRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			o.payment_status,
			COUNT(*),
			COALESCE(SUM(o.total), 0)
		FROM orders o
		WHERE %s
		GROUP BY o.payment_status
		ORDER BY o.payment_status`, sc.orders(q))

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("payment breakdown query failed: %w", err)
	}
	defer closeRows(ctx, rows, "payment breakdown")

	var result []store.PaymentRow
	for rows.Next() {
		var r store.PaymentRow
		if err := rows.Scan(&r.Status, &r.Count, &r.Amount); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetCancelledTotals(ctx context.Context, q sales.Query) (store.CancelledTotals, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(o.total), 0)
		FROM orders o
		WHERE %s AND o.status = 'CANCELLED'`, sc.orders(q))

	var totals store.CancelledTotals
	if err := s.db.QueryRowContext(ctx, query, sc.args...).Scan(&totals.Orders, &totals.Amount); err != nil {
		return store.CancelledTotals{}, fmt.Errorf("cancelled totals query failed: %w", err)
	}
	return totals, nil
}

func (s *salesStore) GetOrderSizeDistribution(ctx context.Context, q sales.Query, bounds []float64) ([]store.OrderSizeRow, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("order size bounds are empty")
	}
	sc := &scope{}
	where := sc.orders(q)

	var cases strings.Builder
	for i, lower := range bounds {
		if i == len(bounds)-1 {
			fmt.Fprintf(&cases, " WHEN o.total >= %s THEN %d", sc.arg(lower), i)
			continue
		}
		fmt.Fprintf(&cases, " WHEN o.total >= %s AND o.total < %s THEN %d", sc.arg(lower), sc.arg(bounds[i+1]), i)
	}

	query := fmt.Sprintf(`
		SELECT
			b.band,
			COUNT(*),
			COALESCE(SUM(b.total), 0)
		FROM (
			SELECT CASE%s END AS band, o.total
			FROM orders o
			WHERE %s AND %s
		) b
		WHERE b.band IS NOT NULL
		GROUP BY b.band
		ORDER BY b.band`, cases.String(), where, notCancelled)

	rows, err := s.db.QueryContext(ctx, query, sc.args...)
	if err != nil {
		return nil, fmt.Errorf("order size query failed: %w", err)
	}
	defer closeRows(ctx, rows, "order size")

	var result []store.OrderSizeRow
	for rows.Next() {
		var r store.OrderSizeRow
		if err := rows.Scan(&r.Band, &r.Count, &r.Revenue); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *salesStore) GetFulfillmentStats(ctx context.Context, q sales.Query) (store.FulfillmentRow, error) {
	sc := &scope{}
	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(AVG(EXTRACT(EPOCH FROM (o.delivered_at - o.created_at)) / 3600), 0)
		FROM orders o
		WHERE %s AND o.status = 'DELIVERED' AND o.delivered_at IS NOT NULL`, sc.orders(q))

	var row store.FulfillmentRow
	if err := s.db.QueryRowContext(ctx, query, sc.args...).Scan(&row.Orders, &row.AverageHours); err != nil {
		return store.FulfillmentRow{}, fmt.Errorf("fulfillment query failed: %w", err)
	}
	return row, nil
}
