package adapters

import (
	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const UncategorizedLabel = "Sin categoría"

// Money converts a store amount to a payload amount rounded to cents
func Money(d decimal.Decimal) float64 {
	return format.Cents(d.InexactFloat64())
}

func MapStoreProductSalesToDomain(row store.ProductSalesRow, products map[string]store.ProductRow) domain.ProductSales {
	sale := domain.ProductSales{
		ProductID: row.ProductID,
		Name:      row.ProductID,
		Category:  UncategorizedLabel,
		UnitsSold: row.UnitsSold,
		Revenue:   Money(row.Revenue),
	}
	if p, ok := products[row.ProductID]; ok {
		sale.Name = p.Name
		sale.Price = Money(p.Price)
		if p.Category != "" {
			sale.Category = p.Category
		}
	}
	return sale
}

func MapStoreCustomerSpendToDomain(row store.CustomerSpendRow) domain.CustomerSpend {
	return domain.CustomerSpend{
		CustomerID: row.CustomerID,
		Name:       row.Name,
		Email:      row.Email,
		TotalSpent: Money(row.TotalSpent),
		OrderCount: row.OrderCount,
	}
}

func MapStoreDailySalesToDomain(row store.DailySalesRow) domain.DailySales {
	return domain.DailySales{
		Date:    row.Day.UTC(),
		Revenue: Money(row.Revenue),
		Orders:  row.Orders,
	}
}

func MapStoreCategorySalesToDomain(row store.CategorySalesRow) domain.CategorySales {
	return domain.CategorySales{
		CategoryID:   row.CategoryID,
		Category:     row.Category,
		Revenue:      Money(row.Revenue),
		Quantity:     row.Quantity,
		ProductCount: row.ProductCount,
	}
}

// MapStoreStatusRowsToDomain returns one entry per order status in lifecycle
// order, zero filled, or nothing when the window has no orders at all
func MapStoreStatusRowsToDomain(rows []store.StatusRow) []domain.StatusSummary {
	if len(rows) == 0 {
		return []domain.StatusSummary{}
	}
	byStatus := lo.KeyBy(rows, func(r store.StatusRow) domain.OrderStatus { return domain.OrderStatus(r.Status) })

	return lo.Map(domain.OrderStatuses, func(status domain.OrderStatus, _ int) domain.StatusSummary {
		row := byStatus[status]
		revenue := Money(row.Revenue)
		return domain.StatusSummary{
			Status:       status,
			Label:        status.Label(),
			Count:        row.Count,
			Revenue:      revenue,
			AverageValue: format.Cents(format.Ratio(revenue, float64(row.Count))),
		}
	})
}

func MapStorePaymentRowsToDomain(rows []store.PaymentRow) []domain.PaymentStatusSummary {
	return lo.Map(rows, func(r store.PaymentRow, _ int) domain.PaymentStatusSummary {
		status := domain.PaymentStatus(r.Status)
		return domain.PaymentStatusSummary{
			Status: status,
			Label:  status.Label(),
			Count:  r.Count,
			Amount: Money(r.Amount),
		}
	})
}

func MapStoreRegionToDomain(row store.RegionRow) domain.RegionCount {
	return domain.RegionCount{Region: row.Region, Customers: row.Customers}
}

// ProductIndex keys looked up products by id for in-memory joins
func ProductIndex(rows []store.ProductRow) map[string]store.ProductRow {
	return lo.KeyBy(rows, func(p store.ProductRow) string { return p.ID })
}
