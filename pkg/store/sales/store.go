// Package sales defines the read-only queries the report generators run
// against the storefront's transactional data.
//
// Unless stated otherwise every order scoped query selects orders created in
// [Start, End], narrowed by Filters: Statuses restricts the order status and
// CategoryIDs keeps only orders with at least one line in those categories.
// Line item queries additionally drop lines outside CategoryIDs. Revenue and
// unit figures never include cancelled orders.
package sales

import (
	"context"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
)

type Query struct {
	Start   time.Time
	End     time.Time
	Filters domain.Filters
}

type ProductRank int

const (
	RankByUnits ProductRank = iota
	RankByRevenue
)

type TopProductsOptions struct {
	Limit      int
	By         ProductRank
	ActiveOnly bool
}

type Store interface {
	GetOrderTotals(ctx context.Context, q Query) (store.OrderTotals, error)
	// GetTopProducts ranks products by units or revenue, ties broken by product id
	GetTopProducts(ctx context.Context, q Query, opts TopProductsOptions) ([]store.ProductSalesRow, error)
	// GetProductsByIDs resolves display attributes for a set of products in one round trip
	GetProductsByIDs(ctx context.Context, ids []string) ([]store.ProductRow, error)
	// GetTopCustomers only returns customers with a positive spend
	GetTopCustomers(ctx context.Context, q Query, limit int) ([]store.CustomerSpendRow, error)
	GetDailySales(ctx context.Context, q Query) ([]store.DailySalesRow, error)
	// GetCategorySales rolls line items up per category. Lines of uncategorized
	// products are dropped. With includeEmpty every active category is returned.
	GetCategorySales(ctx context.Context, q Query, includeEmpty bool) ([]store.CategorySalesRow, error)
	// GetStatusBreakdown counts every order in the window, cancelled included
	GetStatusBreakdown(ctx context.Context, q Query) ([]store.StatusRow, error)
	GetCustomerCounts(ctx context.Context, q Query) (store.CustomerCounts, error)
	GetRepeatCustomerCounts(ctx context.Context, q Query) (store.RepeatCounts, error)
	GetCustomersByRegion(ctx context.Context, q Query, limit int) ([]store.RegionRow, error)
	// GetInventoryStats reports stock health of active products. It is not windowed.
	GetInventoryStats(ctx context.Context, q Query, lowStockThreshold int64) (store.InventoryRow, error)
	GetPaymentStatusBreakdown(ctx context.Context, q Query) ([]store.PaymentRow, error)
	GetCancelledTotals(ctx context.Context, q Query) (store.CancelledTotals, error)
	// GetOrderSizeDistribution buckets orders by total into [bounds[i], bounds[i+1]),
	// the last band being unbounded
	GetOrderSizeDistribution(ctx context.Context, q Query, bounds []float64) ([]store.OrderSizeRow, error)
	// GetFulfillmentStats measures delivered orders from creation to delivery
	GetFulfillmentStats(ctx context.Context, q Query) (store.FulfillmentRow, error)
}
