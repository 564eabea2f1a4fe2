package reports

import (
	"context"
	"fmt"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/adapters"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/samber/lo"
)

const (
	topProductsLimit  = 10
	topCustomersLimit = 10
)

// conversionRate has no visit tracking behind it and is always reported as simulated
const conversionRate = 0.032

func (g *generators) salesSummary(ctx context.Context, q sales.Query) (domain.Payload, error) {
	var (
		totals     store.OrderTotals
		products   []store.ProductSalesRow
		customers  []store.CustomerSpendRow
		daily      []store.DailySalesRow
		categories []store.CategorySalesRow
		statuses   []store.StatusRow
	)

	err := fanOut(ctx,
		func(ctx context.Context) (err error) {
			totals, err = g.store.GetOrderTotals(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			products, err = g.store.GetTopProducts(ctx, q, sales.TopProductsOptions{Limit: topProductsLimit, By: sales.RankByUnits})
			return err
		},
		func(ctx context.Context) (err error) {
			customers, err = g.store.GetTopCustomers(ctx, q, topCustomersLimit)
			return err
		},
		func(ctx context.Context) (err error) {
			daily, err = g.store.GetDailySales(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			categories, err = g.store.GetCategorySales(ctx, q, false)
			return err
		},
		func(ctx context.Context) (err error) {
			statuses, err = g.store.GetStatusBreakdown(ctx, q)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary queries: %w", err)
	}

	index, err := g.productIndex(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("sales summary product lookup: %w", err)
	}

	revenue := adapters.Money(totals.Revenue)
	return &domain.SalesSummaryReport{
		Summary: domain.SalesSummary{
			TotalRevenue:      revenue,
			TotalOrders:       totals.TotalOrders,
			CompletedOrders:   totals.CompletedOrders,
			AverageOrderValue: format.Cents(format.Ratio(revenue, float64(totals.CompletedOrders))),
			UnitsSold:         totals.UnitsSold,
			ConversionRate:    domain.Measure{Value: conversionRate, Simulated: true},
		},
		TopProducts: lo.Map(products, func(r store.ProductSalesRow, _ int) domain.ProductSales {
			return adapters.MapStoreProductSalesToDomain(r, index)
		}),
		TopCustomers: lo.Map(customers, func(r store.CustomerSpendRow, _ int) domain.CustomerSpend {
			return adapters.MapStoreCustomerSpendToDomain(r)
		}),
		SalesTrends: lo.Map(daily, func(r store.DailySalesRow, _ int) domain.DailySales {
			return adapters.MapStoreDailySalesToDomain(r)
		}),
		CategoryAnalysis: lo.Map(categories, func(r store.CategorySalesRow, _ int) domain.CategorySales {
			return adapters.MapStoreCategorySalesToDomain(r)
		}),
		StatusBreakdown: adapters.MapStoreStatusRowsToDomain(statuses),
	}, nil
}
