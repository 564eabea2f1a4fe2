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
	bestSellersLimit   = 20
	profitabilityLimit = 20
	lowStockThreshold  = 10
)

func (g *generators) productPerformance(ctx context.Context, q sales.Query) (domain.Payload, error) {
	var (
		totals      store.OrderTotals
		bestSellers []store.ProductSalesRow
		earners     []store.ProductSalesRow
		categories  []store.CategorySalesRow
		inventory   store.InventoryRow
	)

	err := fanOut(ctx,
		func(ctx context.Context) (err error) {
			totals, err = g.store.GetOrderTotals(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			bestSellers, err = g.store.GetTopProducts(ctx, q, sales.TopProductsOptions{Limit: bestSellersLimit, By: sales.RankByUnits})
			return err
		},
		func(ctx context.Context) (err error) {
			earners, err = g.store.GetTopProducts(ctx, q, sales.TopProductsOptions{
				Limit:      profitabilityLimit,
				By:         sales.RankByRevenue,
				ActiveOnly: true,
			})
			return err
		},
		func(ctx context.Context) (err error) {
			categories, err = g.store.GetCategorySales(ctx, q, true)
			return err
		},
		func(ctx context.Context) (err error) {
			inventory, err = g.store.GetInventoryStats(ctx, q, lowStockThreshold)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("product performance queries: %w", err)
	}

	index, err := g.productIndex(ctx, bestSellers, earners)
	if err != nil {
		return nil, fmt.Errorf("product performance product lookup: %w", err)
	}

	return &domain.ProductPerformanceReport{
		Summary: domain.ProductSummary{
			TotalRevenue:      adapters.Money(totals.Revenue),
			TotalUnitsSold:    totals.UnitsSold,
			ProductsWithSales: totals.ProductsSold,
		},
		BestSellers: lo.Map(bestSellers, func(r store.ProductSalesRow, _ int) domain.ProductSales {
			return adapters.MapStoreProductSalesToDomain(r, index)
		}),
		CategoryPerformance: lo.Map(categories, func(r store.CategorySalesRow, _ int) domain.CategorySales {
			return adapters.MapStoreCategorySalesToDomain(r)
		}),
		InventoryInsights: domain.InventoryInsights{
			ActiveProducts:    inventory.Active,
			LowStockCount:     inventory.LowStock,
			OutOfStockCount:   inventory.OutOfStock,
			AverageStock:      format.Cents(inventory.AverageStock.InexactFloat64()),
			LowStockThreshold: lowStockThreshold,
		},
		Profitability: lo.Map(earners, func(r store.ProductSalesRow, _ int) domain.ProductProfit {
			return g.profit(ctx, r, index)
		}),
	}, nil
}

func (g *generators) profit(ctx context.Context, row store.ProductSalesRow, index map[string]store.ProductRow) domain.ProductProfit {
	sale := adapters.MapStoreProductSalesToDomain(row, index)
	ratio := g.pricing.GetCostRatio(ctx, row.ProductID)
	cost, profit := ratio.Apply(row.Revenue)

	return domain.ProductProfit{
		ProductID:       sale.ProductID,
		Name:            sale.Name,
		Category:        sale.Category,
		UnitsSold:       sale.UnitsSold,
		Revenue:         sale.Revenue,
		EstimatedCost:   adapters.Money(cost),
		EstimatedProfit: adapters.Money(profit),
		Margin:          format.Fraction(profit.InexactFloat64(), row.Revenue.InexactFloat64()),
		Simulated:       ratio.Simulated,
	}
}
