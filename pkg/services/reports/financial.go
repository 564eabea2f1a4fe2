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

func (g *generators) financial(ctx context.Context, q sales.Query) (domain.Payload, error) {
	var (
		totals     store.OrderTotals
		categories []store.CategorySalesRow
		payments   []store.PaymentRow
		cancelled  store.CancelledTotals
		daily      []store.DailySalesRow
	)

	err := fanOut(ctx,
		func(ctx context.Context) (err error) {
			totals, err = g.store.GetOrderTotals(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			categories, err = g.store.GetCategorySales(ctx, q, false)
			return err
		},
		func(ctx context.Context) (err error) {
			payments, err = g.store.GetPaymentStatusBreakdown(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			cancelled, err = g.store.GetCancelledTotals(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			daily, err = g.store.GetDailySales(ctx, q)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("financial queries: %w", err)
	}

	ratio := g.pricing.GetCostRatio(ctx, "")
	cost, profit := ratio.Apply(totals.Revenue)
	revenue := adapters.Money(totals.Revenue)
	lost := adapters.Money(cancelled.Amount)

	return &domain.FinancialReport{
		Summary: domain.FinancialSummary{
			TotalRevenue:      revenue,
			TotalOrders:       totals.TotalOrders,
			AverageOrderValue: format.Cents(format.Ratio(revenue, float64(totals.CompletedOrders))),
			EstimatedCost:     adapters.Money(cost),
			EstimatedProfit:   adapters.Money(profit),
			ProfitMargin:      format.Fraction(profit.InexactFloat64(), totals.Revenue.InexactFloat64()),
			CostSimulated:     ratio.Simulated,
		},
		RevenueByCategory: lo.Map(categories, func(r store.CategorySalesRow, _ int) domain.CategoryFinancials {
			categoryCost, margin := ratio.Apply(r.Revenue)
			return domain.CategoryFinancials{
				CategoryID:      r.CategoryID,
				Category:        r.Category,
				Revenue:         adapters.Money(r.Revenue),
				EstimatedCost:   adapters.Money(categoryCost),
				EstimatedMargin: adapters.Money(margin),
				MarginRate:      format.Fraction(margin.InexactFloat64(), r.Revenue.InexactFloat64()),
				Simulated:       ratio.Simulated,
			}
		}),
		PaymentBreakdown: adapters.MapStorePaymentRowsToDomain(payments),
		Losses: domain.LossSummary{
			CancelledOrders: cancelled.Orders,
			CancelledAmount: lost,
			LossRate:        format.Fraction(lost, revenue+lost),
		},
		DailyRevenue: lo.Map(daily, func(r store.DailySalesRow, _ int) domain.DailySales {
			return adapters.MapStoreDailySalesToDomain(r)
		}),
	}, nil
}
