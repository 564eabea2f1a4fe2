package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/store"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type salesStore struct {
	snap       *Snapshot
	products   map[string]Product
	categories map[string]Category
	customers  map[string]Customer
}

// NewSalesStore serves the report queries from a snapshot held in memory.
// The snapshot must not be modified afterwards.
func NewSalesStore(snap *Snapshot) (sales.Store, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	return &salesStore{
		snap:       snap,
		products:   lo.KeyBy(snap.Products, func(p Product) string { return p.ID }),
		categories: lo.KeyBy(snap.Categories, func(c Category) string { return c.ID }),
		customers:  lo.KeyBy(snap.Customers, func(c Customer) string { return c.ID }),
	}, nil
}

func inWindow(t time.Time, q sales.Query) bool {
	return !t.Before(q.Start) && !t.After(q.End)
}

func (s *salesStore) lineInCategories(item OrderItem, categoryIDs []string) bool {
	if len(categoryIDs) == 0 {
		return true
	}
	p, ok := s.products[item.ProductID]
	return ok && lo.Contains(categoryIDs, p.CategoryID)
}

// orders returns the orders of the window that pass the filters, cancelled included
func (s *salesStore) orders(q sales.Query) []Order {
	return lo.Filter(s.snap.Orders, func(o Order, _ int) bool {
		if !inWindow(o.CreatedAt, q) {
			return false
		}
		if len(q.Filters.Statuses) > 0 && !lo.Contains(q.Filters.Statuses, o.Status) {
			return false
		}
		if len(q.Filters.CategoryIDs) > 0 {
			return lo.SomeBy(o.Items, func(i OrderItem) bool {
				return s.lineInCategories(i, q.Filters.CategoryIDs)
			})
		}
		return true
	})
}

func (s *salesStore) paidOrders(q sales.Query) []Order {
	return lo.Reject(s.orders(q), func(o Order, _ int) bool {
		return o.Status == domain.OrderStatusCancelled
	})
}

func (s *salesStore) lines(q sales.Query, o Order) []OrderItem {
	return lo.Filter(o.Items, func(i OrderItem, _ int) bool {
		return s.lineInCategories(i, q.Filters.CategoryIDs)
	})
}

func (s *salesStore) GetOrderTotals(_ context.Context, q sales.Query) (store.OrderTotals, error) {
	totals := store.OrderTotals{TotalOrders: int64(len(s.orders(q)))}
	sold := map[string]struct{}{}
	for _, o := range s.paidOrders(q) {
		totals.CompletedOrders++
		totals.Revenue = totals.Revenue.Add(o.Total)
		for _, item := range s.lines(q, o) {
			totals.UnitsSold += item.Quantity
			sold[item.ProductID] = struct{}{}
		}
	}
	totals.ProductsSold = int64(len(sold))
	return totals, nil
}

func (s *salesStore) GetTopProducts(_ context.Context, q sales.Query, opts sales.TopProductsOptions) ([]store.ProductSalesRow, error) {
	byProduct := map[string]*store.ProductSalesRow{}
	for _, o := range s.paidOrders(q) {
		for _, item := range s.lines(q, o) {
			if opts.ActiveOnly && !s.products[item.ProductID].Active {
				continue
			}
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &store.ProductSalesRow{ProductID: item.ProductID}
				byProduct[item.ProductID] = row
			}
			row.UnitsSold += item.Quantity
			row.Revenue = row.Revenue.Add(item.Subtotal())
		}
	}

	rows := lo.Map(lo.Values(byProduct), func(r *store.ProductSalesRow, _ int) store.ProductSalesRow { return *r })
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch opts.By {
		case sales.RankByRevenue:
			if !a.Revenue.Equal(b.Revenue) {
				return a.Revenue.GreaterThan(b.Revenue)
			}
		default:
			if a.UnitsSold != b.UnitsSold {
				return a.UnitsSold > b.UnitsSold
			}
		}
		return a.ProductID < b.ProductID
	})
	return limit(rows, opts.Limit), nil
}

func (s *salesStore) GetProductsByIDs(_ context.Context, ids []string) ([]store.ProductRow, error) {
	var rows []store.ProductRow
	for _, id := range lo.Uniq(ids) {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		rows = append(rows, store.ProductRow{
			ID:         p.ID,
			Name:       p.Name,
			CategoryID: p.CategoryID,
			Category:   s.categories[p.CategoryID].Name,
			Price:      p.Price,
			Stock:      p.Stock,
			Active:     p.Active,
		})
	}
	return rows, nil
}

func (s *salesStore) GetTopCustomers(_ context.Context, q sales.Query, n int) ([]store.CustomerSpendRow, error) {
	byCustomer := map[string]*store.CustomerSpendRow{}
	for _, o := range s.paidOrders(q) {
		c, ok := s.customers[o.CustomerID]
		if !ok {
			continue
		}
		row, ok := byCustomer[c.ID]
		if !ok {
			row = &store.CustomerSpendRow{CustomerID: c.ID, Name: c.Name, Email: c.Email}
			byCustomer[c.ID] = row
		}
		row.TotalSpent = row.TotalSpent.Add(o.Total)
		row.OrderCount++
	}

	rows := lo.FilterMap(lo.Values(byCustomer), func(r *store.CustomerSpendRow, _ int) (store.CustomerSpendRow, bool) {
		return *r, r.TotalSpent.IsPositive()
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSpent.Equal(rows[j].TotalSpent) {
			return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return limit(rows, n), nil
}

func (s *salesStore) GetDailySales(_ context.Context, q sales.Query) ([]store.DailySalesRow, error) {
	byDay := map[time.Time]*store.DailySalesRow{}
	for _, o := range s.paidOrders(q) {
		created := o.CreatedAt.UTC()
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		row, ok := byDay[day]
		if !ok {
			row = &store.DailySalesRow{Day: day}
			byDay[day] = row
		}
		row.Revenue = row.Revenue.Add(o.Total)
		row.Orders++
	}

	rows := lo.Map(lo.Values(byDay), func(r *store.DailySalesRow, _ int) store.DailySalesRow { return *r })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return rows, nil
}

func (s *salesStore) GetCategorySales(_ context.Context, q sales.Query, includeEmpty bool) ([]store.CategorySalesRow, error) {
	byCategory := map[string]*store.CategorySalesRow{}
	products := map[string]map[string]struct{}{}

	if includeEmpty {
		for _, c := range s.snap.Categories {
			if !c.Active {
				continue
			}
			if len(q.Filters.CategoryIDs) > 0 && !lo.Contains(q.Filters.CategoryIDs, c.ID) {
				continue
			}
			byCategory[c.ID] = &store.CategorySalesRow{CategoryID: c.ID, Category: c.Name}
		}
	}

	for _, o := range s.paidOrders(q) {
		for _, item := range s.lines(q, o) {
			p, ok := s.products[item.ProductID]
			if !ok || p.CategoryID == "" {
				continue
			}
			c, ok := s.categories[p.CategoryID]
			if !ok {
				continue
			}
			row, ok := byCategory[c.ID]
			if !ok {
				if includeEmpty {
					continue
				}
				row = &store.CategorySalesRow{CategoryID: c.ID, Category: c.Name}
				byCategory[c.ID] = row
			}
			row.Revenue = row.Revenue.Add(item.Subtotal())
			row.Quantity += item.Quantity
			if products[c.ID] == nil {
				products[c.ID] = map[string]struct{}{}
			}
			products[c.ID][p.ID] = struct{}{}
		}
	}

	rows := lo.Map(lo.Values(byCategory), func(r *store.CategorySalesRow, _ int) store.CategorySalesRow {
		r.ProductCount = int64(len(products[r.CategoryID]))
		return *r
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}

func (s *salesStore) GetStatusBreakdown(_ context.Context, q sales.Query) ([]store.StatusRow, error) {
	byStatus := map[string]*store.StatusRow{}
	for _, o := range s.orders(q) {
		row, ok := byStatus[string(o.Status)]
		if !ok {
			row = &store.StatusRow{Status: string(o.Status)}
			byStatus[string(o.Status)] = row
		}
		row.Count++
		row.Revenue = row.Revenue.Add(o.Total)
	}

	rows := lo.Map(lo.Values(byStatus), func(r *store.StatusRow, _ int) store.StatusRow { return *r })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return rows, nil
}

func (s *salesStore) GetCustomerCounts(_ context.Context, q sales.Query) (store.CustomerCounts, error) {
	var counts store.CustomerCounts
	for _, c := range s.snap.Customers {
		if c.CreatedAt.After(q.End) {
			continue
		}
		counts.Total++
		if !c.CreatedAt.Before(q.Start) {
			counts.New++
		}
	}
	return counts, nil
}

func (s *salesStore) GetRepeatCustomerCounts(_ context.Context, q sales.Query) (store.RepeatCounts, error) {
	perCustomer := lo.CountValuesBy(s.paidOrders(q), func(o Order) string { return o.CustomerID })

	var counts store.RepeatCounts
	for _, n := range perCustomer {
		counts.WithOrders++
		if n > 1 {
			counts.Repeat++
		}
	}
	return counts, nil
}

func (s *salesStore) GetCustomersByRegion(_ context.Context, q sales.Query, n int) ([]store.RegionRow, error) {
	seen := map[string]struct{}{}
	byRegion := map[string]int64{}
	for _, o := range s.paidOrders(q) {
		if _, ok := seen[o.CustomerID]; ok {
			continue
		}
		c, ok := s.customers[o.CustomerID]
		if !ok || c.Region == "" {
			continue
		}
		seen[o.CustomerID] = struct{}{}
		byRegion[c.Region]++
	}

	rows := lo.MapToSlice(byRegion, func(region string, customers int64) store.RegionRow {
		return store.RegionRow{Region: region, Customers: customers}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Customers != rows[j].Customers {
			return rows[i].Customers > rows[j].Customers
		}
		return rows[i].Region < rows[j].Region
	})
	return limit(rows, n), nil
}

func (s *salesStore) GetInventoryStats(_ context.Context, q sales.Query, lowStockThreshold int64) (store.InventoryRow, error) {
	var (
		row   store.InventoryRow
		stock int64
	)
	for _, p := range s.snap.Products {
		if !p.Active {
			continue
		}
		if len(q.Filters.CategoryIDs) > 0 && !lo.Contains(q.Filters.CategoryIDs, p.CategoryID) {
			continue
		}
		row.Active++
		stock += p.Stock
		if p.Stock < lowStockThreshold {
			row.LowStock++
		}
		if p.Stock == 0 {
			row.OutOfStock++
		}
	}
	if row.Active > 0 {
		row.AverageStock = decimal.NewFromInt(stock).Div(decimal.NewFromInt(row.Active))
	}
	return row, nil
}

func (s *salesStore) GetPaymentStatusBreakdown(_ context.Context, q sales.Query) ([]store.PaymentRow, error) {
	byStatus := map[string]*store.PaymentRow{}
	for _, o := range s.orders(q) {
		row, ok := byStatus[string(o.PaymentStatus)]
		if !ok {
			row = &store.PaymentRow{Status: string(o.PaymentStatus)}
			byStatus[string(o.PaymentStatus)] = row
		}
		row.Count++
		row.Amount = row.Amount.Add(o.Total)
	}

	rows := lo.Map(lo.Values(byStatus), func(r *store.PaymentRow, _ int) store.PaymentRow { return *r })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return rows, nil
}

func (s *salesStore) GetCancelledTotals(_ context.Context, q sales.Query) (store.CancelledTotals, error) {
	var totals store.CancelledTotals
	for _, o := range s.orders(q) {
		if o.Status != domain.OrderStatusCancelled {
			continue
		}
		totals.Orders++
		totals.Amount = totals.Amount.Add(o.Total)
	}
	return totals, nil
}

func (s *salesStore) GetOrderSizeDistribution(_ context.Context, q sales.Query, bounds []float64) ([]store.OrderSizeRow, error) {
	if len(bounds) == 0 {
		return nil, fmt.Errorf("order size bounds are empty")
	}
	rows := make([]store.OrderSizeRow, len(bounds))
	for i := range rows {
		rows[i].Band = i
	}
	for _, o := range s.paidOrders(q) {
		total := o.Total.InexactFloat64()
		band := sort.Search(len(bounds), func(i int) bool { return bounds[i] > total }) - 1
		if band < 0 {
			continue
		}
		rows[band].Count++
		rows[band].Revenue = rows[band].Revenue.Add(o.Total)
	}
	return lo.Filter(rows, func(r store.OrderSizeRow, _ int) bool { return r.Count > 0 }), nil
}

func (s *salesStore) GetFulfillmentStats(_ context.Context, q sales.Query) (store.FulfillmentRow, error) {
	var (
		row   store.FulfillmentRow
		hours decimal.Decimal
	)
	for _, o := range s.orders(q) {
		if o.Status != domain.OrderStatusDelivered || o.DeliveredAt == nil {
			continue
		}
		row.Orders++
		hours = hours.Add(decimal.NewFromFloat(o.DeliveredAt.Sub(o.CreatedAt).Hours()))
	}
	if row.Orders > 0 {
		row.AverageHours = hours.Div(decimal.NewFromInt(row.Orders))
	}
	return row, nil
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
