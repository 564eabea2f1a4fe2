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

type sizeBand struct {
	label string
	min   float64
	max   float64
}

// orderSizeBands are contiguous; the last one is unbounded
var orderSizeBands = []sizeBand{
	{label: "Menos de $100", min: 0, max: 100},
	{label: "$100 - $500", min: 100, max: 500},
	{label: "$500 - $1,000", min: 500, max: 1000},
	{label: "$1,000 - $5,000", min: 1000, max: 5000},
	{label: "Más de $5,000", min: 5000},
}

func (g *generators) ordersAnalysis(ctx context.Context, q sales.Query) (domain.Payload, error) {
	var (
		totals      store.OrderTotals
		statuses    []store.StatusRow
		daily       []store.DailySalesRow
		fulfillment store.FulfillmentRow
		sizes       []store.OrderSizeRow
	)
	bounds := lo.Map(orderSizeBands, func(b sizeBand, _ int) float64 { return b.min })

	err := fanOut(ctx,
		func(ctx context.Context) (err error) {
			totals, err = g.store.GetOrderTotals(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			statuses, err = g.store.GetStatusBreakdown(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			daily, err = g.store.GetDailySales(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			fulfillment, err = g.store.GetFulfillmentStats(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			sizes, err = g.store.GetOrderSizeDistribution(ctx, q, bounds)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("orders analysis queries: %w", err)
	}

	revenue := adapters.Money(totals.Revenue)
	hours := format.Cents(fulfillment.AverageHours.InexactFloat64())

	return &domain.OrdersAnalysisReport{
		Summary: domain.OrdersSummary{
			TotalOrders:       totals.TotalOrders,
			TotalRevenue:      revenue,
			AverageOrderValue: format.Cents(format.Ratio(revenue, float64(totals.CompletedOrders))),
		},
		StatusBreakdown: adapters.MapStoreStatusRowsToDomain(statuses),
		DailyTrends: lo.Map(daily, func(r store.DailySalesRow, _ int) domain.DailySales {
			return adapters.MapStoreDailySalesToDomain(r)
		}),
		ProcessingMetrics: domain.ProcessingMetrics{
			FulfilledOrders:        fulfillment.Orders,
			AverageProcessingHours: hours,
			AverageProcessingDays:  format.Cents(hours / 24),
			Simulated:              false,
		},
		OrderSizeDistribution: distribution(sizes),
	}, nil
}

// distribution fills every band once any order was bucketed
func distribution(rows []store.OrderSizeRow) []domain.OrderSizeBucket {
	if len(rows) == 0 {
		return []domain.OrderSizeBucket{}
	}
	byBand := lo.KeyBy(rows, func(r store.OrderSizeRow) int { return r.Band })

	return lo.Map(orderSizeBands, func(b sizeBand, i int) domain.OrderSizeBucket {
		row := byBand[i]
		return domain.OrderSizeBucket{
			Label:   b.label,
			Min:     b.min,
			Max:     b.max,
			Count:   row.Count,
			Revenue: adapters.Money(row.Revenue),
		}
	})
}
