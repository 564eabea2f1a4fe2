package reports

import (
	"context"
	"testing"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate[T domain.Payload](t *testing.T, f *fixture, id domain.ReportID, r domain.DateRange) T {
	t.Helper()
	payload, err := f.service.Generate(context.Background(), Request{ReportID: id, Range: r})
	require.NoError(t, err)
	typed, ok := payload.(T)
	require.True(t, ok, "unexpected payload type %T", payload)
	return typed
}

func TestSalesSummary_ThreeOrders(t *testing.T) {
	f := setupFixture(t, testutil.ThreeOrderSnapshot(testutil.Now))

	report := generate[*domain.SalesSummaryReport](t, f, domain.ReportSalesSummary, last30Days())

	assert.Equal(t, 150.0, report.Summary.TotalRevenue)
	assert.Equal(t, int64(3), report.Summary.TotalOrders)
	assert.Equal(t, int64(2), report.Summary.CompletedOrders)
	assert.Equal(t, 75.0, report.Summary.AverageOrderValue)
	assert.True(t, report.Summary.ConversionRate.Simulated)

	byStatus := lo.KeyBy(report.StatusBreakdown, func(s domain.StatusSummary) domain.OrderStatus { return s.Status })
	assert.Equal(t, int64(2), byStatus[domain.OrderStatusDelivered].Count)
	assert.Equal(t, 150.0, byStatus[domain.OrderStatusDelivered].Revenue)
	assert.Equal(t, int64(1), byStatus[domain.OrderStatusCancelled].Count)
	assert.Equal(t, 50.0, byStatus[domain.OrderStatusCancelled].Revenue)
}

func TestSalesSummary(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	report := generate[*domain.SalesSummaryReport](t, f, domain.ReportSalesSummary, last30Days())

	assert.Equal(t, domain.SalesSummary{
		TotalRevenue:      1960,
		TotalOrders:       5,
		CompletedOrders:   4,
		AverageOrderValue: 490,
		UnitsSold:         23,
		ConversionRate:    domain.Measure{Value: conversionRate, Simulated: true},
	}, report.Summary)

	require.Len(t, report.TopProducts, 4)
	assert.Equal(t, domain.ProductSales{
		ProductID: "p-3", Name: "Teclado", Category: "Electrónica", Price: 100, UnitsSold: 18, Revenue: 1800,
	}, report.TopProducts[0])
	assert.Equal(t, "Sin categoría", report.TopProducts[3].Category)

	require.Len(t, report.TopCustomers, 3)
	assert.Equal(t, "cu-2", report.TopCustomers[0].CustomerID)
	assert.Len(t, report.SalesTrends, 4)

	t.Run("category revenue never exceeds total revenue", func(t *testing.T) {
		sum := lo.SumBy(report.CategoryAnalysis, func(c domain.CategorySales) float64 { return c.Revenue })
		assert.Equal(t, 1950.0, sum)
		assert.LessOrEqual(t, sum, report.Summary.TotalRevenue)
	})

	t.Run("status counts add up to total orders", func(t *testing.T) {
		require.Len(t, report.StatusBreakdown, len(domain.OrderStatuses))
		sum := lo.SumBy(report.StatusBreakdown, func(s domain.StatusSummary) int64 { return s.Count })
		assert.Equal(t, report.Summary.TotalOrders, sum)
	})
}

func TestSalesSummary_FiltersAreApplied(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	payload, err := f.service.Generate(context.Background(), Request{
		ReportID: domain.ReportSalesSummary,
		Range:    last30Days(),
		Filters:  domain.Filters{Statuses: []domain.OrderStatus{domain.OrderStatusDelivered, domain.OrderStatusCancelled}},
	})
	require.NoError(t, err)
	report := payload.(*domain.SalesSummaryReport)

	assert.Equal(t, int64(3), report.Summary.TotalOrders)
	assert.Equal(t, 1300.0, report.Summary.TotalRevenue)
	sum := lo.SumBy(report.StatusBreakdown, func(s domain.StatusSummary) int64 { return s.Count })
	assert.Equal(t, report.Summary.TotalOrders, sum)
}

func TestSalesSummary_EmptyWindow(t *testing.T) {
	f := setupFixture(t, testutil.EmptySnapshot())

	report := generate[*domain.SalesSummaryReport](t, f, domain.ReportSalesSummary, last30Days())

	assert.Equal(t, int64(0), report.Summary.TotalOrders)
	assert.Equal(t, 0.0, report.Summary.TotalRevenue)
	assert.Equal(t, 0.0, report.Summary.AverageOrderValue)
	assert.NotNil(t, report.TopProducts)
	assert.Empty(t, report.TopProducts)
	assert.Empty(t, report.TopCustomers)
	assert.Empty(t, report.SalesTrends)
	assert.Empty(t, report.CategoryAnalysis)
	assert.Empty(t, report.StatusBreakdown)
}

func TestCustomerAnalysis(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	report := generate[*domain.CustomerAnalysisReport](t, f, domain.ReportCustomerAnalysis, last30Days())

	assert.Equal(t, domain.CustomerSummary{
		TotalCustomers:       4,
		NewCustomers:         2,
		CustomersWithOrders:  3,
		RepeatCustomers:      1,
		RepeatCustomerRate:   0.3333,
		AverageLifetimeValue: 653.33,
	}, report.Summary)

	require.Len(t, report.GeographicDistribution, 2)
	assert.Equal(t, domain.RegionCount{Region: "Jalisco", Customers: 2}, report.GeographicDistribution[0])

	t.Run("segmentation covers the sample, not the customer base", func(t *testing.T) {
		seg := report.Segmentation
		assert.Equal(t, domain.Segmentation{High: 1, Medium: 1, Low: 1, SampleSize: 3}, seg)
		assert.Equal(t, seg.SampleSize, seg.High+seg.Medium+seg.Low)
		assert.Equal(t, int64(len(report.TopCustomers)), seg.SampleSize)
		assert.NotEqual(t, report.Summary.TotalCustomers, seg.SampleSize)
	})
}

func TestSegment_Boundaries(t *testing.T) {
	sample := []domain.CustomerSpend{
		{TotalSpent: 1000.01}, {TotalSpent: 1000}, {TotalSpent: 500}, {TotalSpent: 499.99}, {TotalSpent: 0.5},
	}

	assert.Equal(t, domain.Segmentation{High: 1, Medium: 2, Low: 2, SampleSize: 5}, segment(sample))
	assert.Equal(t, domain.Segmentation{}, segment(nil))
}

func TestProductPerformance(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	report := generate[*domain.ProductPerformanceReport](t, f, domain.ReportProductPerformance, last30Days())

	assert.Equal(t, domain.ProductSummary{TotalRevenue: 1960, TotalUnitsSold: 23, ProductsWithSales: 4}, report.Summary)
	assert.Len(t, report.BestSellers, 4)

	require.Len(t, report.CategoryPerformance, 3, "active categories without sales are listed")
	assert.Equal(t, "Juguetes", report.CategoryPerformance[2].Category)
	assert.Equal(t, 0.0, report.CategoryPerformance[2].Revenue)

	assert.Equal(t, domain.InventoryInsights{
		ActiveProducts: 4, LowStockCount: 2, OutOfStockCount: 1, AverageStock: 32.5, LowStockThreshold: 10,
	}, report.InventoryInsights)

	require.Len(t, report.Profitability, 4)
	assert.Equal(t, domain.ProductProfit{
		ProductID: "p-3", Name: "Teclado", Category: "Electrónica", UnitsSold: 18, Revenue: 1800,
		EstimatedCost: 1260, EstimatedProfit: 540, Margin: 0.3, Simulated: true,
	}, report.Profitability[0])
}

func TestFinancial(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	report := generate[*domain.FinancialReport](t, f, domain.ReportFinancial, last30Days())

	assert.Equal(t, domain.FinancialSummary{
		TotalRevenue:      1960,
		TotalOrders:       5,
		AverageOrderValue: 490,
		EstimatedCost:     1372,
		EstimatedProfit:   588,
		ProfitMargin:      0.3,
		CostSimulated:     true,
	}, report.Summary)

	require.Len(t, report.RevenueByCategory, 2)
	assert.Equal(t, domain.CategoryFinancials{
		CategoryID: "c-elec", Category: "Electrónica", Revenue: 1900,
		EstimatedCost: 1330, EstimatedMargin: 570, MarginRate: 0.3, Simulated: true,
	}, report.RevenueByCategory[0])

	require.Len(t, report.PaymentBreakdown, 3)
	assert.Equal(t, "Pagado", report.PaymentBreakdown[0].Label)
	assert.Equal(t, domain.LossSummary{CancelledOrders: 1, CancelledAmount: 50, LossRate: 0.0249}, report.Losses)
	assert.Len(t, report.DailyRevenue, 4)
}

func TestOrdersAnalysis(t *testing.T) {
	f := setupFixture(t, testutil.StoreSnapshot(testutil.Now))

	report := generate[*domain.OrdersAnalysisReport](t, f, domain.ReportOrdersAnalysis, last30Days())

	assert.Equal(t, domain.OrdersSummary{TotalOrders: 5, TotalRevenue: 1960, AverageOrderValue: 490}, report.Summary)
	assert.Equal(t, domain.ProcessingMetrics{
		FulfilledOrders: 2, AverageProcessingHours: 36, AverageProcessingDays: 1.5, Simulated: false,
	}, report.ProcessingMetrics)

	require.Len(t, report.OrderSizeDistribution, 5)
	counts := lo.Map(report.OrderSizeDistribution, func(b domain.OrderSizeBucket, _ int) int64 { return b.Count })
	assert.Equal(t, []int64{1, 1, 1, 1, 0}, counts)
	assert.Equal(t, 0.0, report.OrderSizeDistribution[4].Max)

	sum := lo.SumBy(report.StatusBreakdown, func(s domain.StatusSummary) int64 { return s.Count })
	assert.Equal(t, report.Summary.TotalOrders, sum)
}

func TestOrdersAnalysis_EmptyWindow(t *testing.T) {
	f := setupFixture(t, testutil.EmptySnapshot())

	report := generate[*domain.OrdersAnalysisReport](t, f, domain.ReportOrdersAnalysis, last30Days())

	assert.Equal(t, int64(0), report.Summary.TotalOrders)
	assert.Empty(t, report.StatusBreakdown)
	assert.Empty(t, report.DailyTrends)
	assert.Empty(t, report.OrderSizeDistribution)
	assert.Equal(t, int64(0), report.ProcessingMetrics.FulfilledOrders)
}
