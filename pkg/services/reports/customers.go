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
	customerSampleSize = 20
	regionsLimit       = 10

	highValueThreshold   = 1000.0
	mediumValueThreshold = 500.0
)

func (g *generators) customerAnalysis(ctx context.Context, q sales.Query) (domain.Payload, error) {
	var (
		counts  store.CustomerCounts
		repeat  store.RepeatCounts
		sample  []store.CustomerSpendRow
		regions []store.RegionRow
	)

	err := fanOut(ctx,
		func(ctx context.Context) (err error) {
			counts, err = g.store.GetCustomerCounts(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			repeat, err = g.store.GetRepeatCustomerCounts(ctx, q)
			return err
		},
		func(ctx context.Context) (err error) {
			sample, err = g.store.GetTopCustomers(ctx, q, customerSampleSize)
			return err
		},
		func(ctx context.Context) (err error) {
			regions, err = g.store.GetCustomersByRegion(ctx, q, regionsLimit)
			return err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("customer analysis queries: %w", err)
	}

	top := lo.Map(sample, func(r store.CustomerSpendRow, _ int) domain.CustomerSpend {
		return adapters.MapStoreCustomerSpendToDomain(r)
	})
	spent := lo.SumBy(top, func(c domain.CustomerSpend) float64 { return c.TotalSpent })

	return &domain.CustomerAnalysisReport{
		Summary: domain.CustomerSummary{
			TotalCustomers:       counts.Total,
			NewCustomers:         counts.New,
			CustomersWithOrders:  repeat.WithOrders,
			RepeatCustomers:      repeat.Repeat,
			RepeatCustomerRate:   format.Fraction(float64(repeat.Repeat), float64(repeat.WithOrders)),
			AverageLifetimeValue: format.Cents(format.Ratio(spent, float64(len(top)))),
		},
		TopCustomers: top,
		GeographicDistribution: lo.Map(regions, func(r store.RegionRow, _ int) domain.RegionCount {
			return adapters.MapStoreRegionToDomain(r)
		}),
		Segmentation: segment(top),
	}, nil
}

// segment classifies the sample only: high above 1000, medium from 500 to 1000, low below 500
func segment(sample []domain.CustomerSpend) domain.Segmentation {
	seg := domain.Segmentation{SampleSize: int64(len(sample))}
	for _, c := range sample {
		switch {
		case c.TotalSpent > highValueThreshold:
			seg.High++
		case c.TotalSpent >= mediumValueThreshold:
			seg.Medium++
		default:
			seg.Low++
		}
	}
	return seg
}
