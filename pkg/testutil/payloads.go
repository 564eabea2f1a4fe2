package testutil

import (
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
)

// SalesPayload is the sales summary of ThreeOrderSnapshot over the last 30 days
func SalesPayload() *domain.SalesSummaryReport {
	day := func(days int) domain.DailySales {
		d := Now.AddDate(0, 0, -days)
		return domain.DailySales{Date: d.Truncate(24 * time.Hour)}
	}
	trendA, trendB := day(8), day(3)
	trendA.Revenue, trendA.Orders = 50, 1
	trendB.Revenue, trendB.Orders = 100, 1

	return &domain.SalesSummaryReport{
		Summary: domain.SalesSummary{
			TotalRevenue:      150,
			TotalOrders:       3,
			CompletedOrders:   2,
			AverageOrderValue: 75,
			UnitsSold:         4,
			ConversionRate:    domain.Measure{Value: 0.032, Simulated: true},
		},
		TopProducts: []domain.ProductSales{
			{ProductID: "p-1", Name: "Audífonos", Category: "Electrónica", Price: 50, UnitsSold: 2, Revenue: 100},
			{ProductID: "p-2", Name: "Lámpara", Category: "Hogar", Price: 25, UnitsSold: 2, Revenue: 50},
		},
		TopCustomers: []domain.CustomerSpend{
			{CustomerID: "cu-1", Name: "Ana López", Email: "ana@example.com", TotalSpent: 100, OrderCount: 1},
			{CustomerID: "cu-2", Name: "Luis Pérez", Email: "luis@example.com", TotalSpent: 50, OrderCount: 1},
		},
		SalesTrends: []domain.DailySales{trendA, trendB},
		CategoryAnalysis: []domain.CategorySales{
			{CategoryID: "c-elec", Category: "Electrónica", Revenue: 100, Quantity: 2, ProductCount: 1},
			{CategoryID: "c-home", Category: "Hogar", Revenue: 50, Quantity: 2, ProductCount: 1},
		},
		StatusBreakdown: []domain.StatusSummary{
			{Status: domain.OrderStatusPending, Label: "Pendiente"},
			{Status: domain.OrderStatusProcessing, Label: "Procesando"},
			{Status: domain.OrderStatusShipped, Label: "Enviado"},
			{Status: domain.OrderStatusDelivered, Label: "Entregado", Count: 2, Revenue: 150, AverageValue: 75},
			{Status: domain.OrderStatusCancelled, Label: "Cancelado", Count: 1, Revenue: 50, AverageValue: 50},
		},
	}
}

// EmptySalesPayload is what a window without orders produces
func EmptySalesPayload() *domain.SalesSummaryReport {
	return &domain.SalesSummaryReport{
		TopProducts:      []domain.ProductSales{},
		TopCustomers:     []domain.CustomerSpend{},
		SalesTrends:      []domain.DailySales{},
		CategoryAnalysis: []domain.CategorySales{},
		StatusBreakdown:  []domain.StatusSummary{},
	}
}

// Header describes a 30 day sales summary generated at Now
func Header(id domain.ReportID, title string) domain.ReportHeader {
	return domain.ReportHeader{
		Definition: domain.ReportDefinition{ID: id, Title: title},
		Range: domain.DateRange{
			Token: "30d",
			Start: Now.AddDate(0, 0, -30),
			End:   Now,
			Label: "Últimos 30 días",
		},
		GeneratedAt: Now,
	}
}
