// Package csv renders reports as labeled comma separated blocks. Numbers are
// written raw so the output can be parsed back.
package csv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
	"github.com/samber/lo"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Format() domain.ExportFormat {
	return domain.FormatCSV
}

func (r *Renderer) Render(ctx context.Context, payload domain.Payload, header domain.ReportHeader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := layout.Build(payload, header)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("unable to lay out report").Mark(ierr.ErrRender)
	}

	typed := tables{}
	if err := payload.Accept(typed); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrRender)
	}

	var buf bytes.Buffer
	for _, s := range layout.NonEmpty(doc.Sections) {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(s.Name + "\n")

		write, ok := typed[s.Name]
		if !ok {
			write = marshal(metricRecords(s))
		}
		if err := write(&buf); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("unable to write %s block", s.Name).
				Mark(ierr.ErrRender)
		}
	}
	return buf.Bytes(), nil
}

type amount float64

func (a amount) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(a), 'f', 2, 64), nil
}

type rate float64

func (r rate) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(r), 'f', 4, 64), nil
}

type metricRecord struct {
	Metric string `csv:"Métrica"`
	Value  string `csv:"Valor"`
}

func metricRecords(s domain.DocumentSection) []metricRecord {
	return lo.FilterMap(s.Rows, func(row []domain.Cell, _ int) (metricRecord, bool) {
		if len(row) < 2 {
			return metricRecord{}, false
		}
		return metricRecord{Metric: row[0].Text, Value: raw(row[1])}, true
	})
}

func raw(c domain.Cell) string {
	switch c.Kind {
	case domain.CellInteger:
		return strconv.FormatInt(int64(c.Value), 10)
	case domain.CellNumber, domain.CellCurrency:
		s, _ := amount(c.Value).MarshalCSV()
		return s
	case domain.CellPercent:
		s, _ := rate(c.Value).MarshalCSV()
		return s
	case domain.CellDate:
		return format.Date(c.Time)
	default:
		return c.Text
	}
}

type productRecord struct {
	ProductID string `csv:"ID"`
	Name      string `csv:"Producto"`
	Category  string `csv:"Categoría"`
	Price     amount `csv:"Precio"`
	UnitsSold int64  `csv:"Unidades"`
	Revenue   amount `csv:"Ingresos"`
}

type customerRecord struct {
	CustomerID string `csv:"ID"`
	Name       string `csv:"Cliente"`
	Email      string `csv:"Email"`
	Orders     int64  `csv:"Pedidos"`
	TotalSpent amount `csv:"Total Gastado"`
}

type dailyRecord struct {
	Date    string `csv:"Fecha"`
	Orders  int64  `csv:"Pedidos"`
	Revenue amount `csv:"Ingresos"`
}

type categoryRecord struct {
	CategoryID string `csv:"ID"`
	Category   string `csv:"Categoría"`
	Products   int64  `csv:"Productos"`
	Quantity   int64  `csv:"Unidades"`
	Revenue    amount `csv:"Ingresos"`
}

type statusRecord struct {
	Status       string `csv:"Estado"`
	Code         string `csv:"Código"`
	Orders       int64  `csv:"Pedidos"`
	Revenue      amount `csv:"Ingresos"`
	AverageValue amount `csv:"Valor Promedio"`
}

type regionRecord struct {
	Region    string `csv:"Región"`
	Customers int64  `csv:"Clientes"`
}

type profitRecord struct {
	ProductID string `csv:"ID"`
	Name      string `csv:"Producto"`
	Category  string `csv:"Categoría"`
	UnitsSold int64  `csv:"Unidades"`
	Revenue   amount `csv:"Ingresos"`
	Cost      amount `csv:"Costo Estimado"`
	Profit    amount `csv:"Ganancia Estimada"`
	Margin    rate   `csv:"Margen"`
}

type categoryFinanceRecord struct {
	CategoryID string `csv:"ID"`
	Category   string `csv:"Categoría"`
	Revenue    amount `csv:"Ingresos"`
	Cost       amount `csv:"Costo Estimado"`
	Margin     amount `csv:"Margen Estimado"`
	MarginRate rate   `csv:"Margen"`
}

type paymentRecord struct {
	Status string `csv:"Estado"`
	Code   string `csv:"Código"`
	Orders int64  `csv:"Pedidos"`
	Amount amount `csv:"Monto"`
}

type sizeRecord struct {
	Band    string `csv:"Rango"`
	Min     amount `csv:"Mínimo"`
	Max     string `csv:"Máximo"`
	Orders  int64  `csv:"Pedidos"`
	Revenue amount `csv:"Ingresos"`
}

func marshal[T any](records []T) func(io.Writer) error {
	return func(w io.Writer) error {
		if err := gocsv.Marshal(records, w); err != nil {
			return fmt.Errorf("marshal records: %w", err)
		}
		return nil
	}
}

// tables holds a typed writer per tabular section; sections without one are
// written as metric/value pairs from the layout
type tables map[string]func(io.Writer) error

func (t tables) VisitSalesSummary(p *domain.SalesSummaryReport) error {
	t[layout.SectionTopProducts] = marshal(products(p.TopProducts))
	t[layout.SectionTopCustomers] = marshal(customers(p.TopCustomers))
	t[layout.SectionSalesTrends] = marshal(daily(p.SalesTrends))
	t[layout.SectionCategorySales] = marshal(categories(p.CategoryAnalysis))
	t[layout.SectionStatusBreakdown] = marshal(statuses(p.StatusBreakdown))
	return nil
}

func (t tables) VisitCustomerAnalysis(p *domain.CustomerAnalysisReport) error {
	t[layout.SectionTopCustomers] = marshal(customers(p.TopCustomers))
	t[layout.SectionRegions] = marshal(lo.Map(p.GeographicDistribution, func(r domain.RegionCount, _ int) regionRecord {
		return regionRecord{Region: r.Region, Customers: r.Customers}
	}))
	return nil
}

func (t tables) VisitProductPerformance(p *domain.ProductPerformanceReport) error {
	t[layout.SectionBestSellers] = marshal(products(p.BestSellers))
	t[layout.SectionCategorySales] = marshal(categories(p.CategoryPerformance))
	t[layout.SectionProfitability] = marshal(lo.Map(p.Profitability, func(r domain.ProductProfit, _ int) profitRecord {
		return profitRecord{
			ProductID: r.ProductID,
			Name:      r.Name,
			Category:  r.Category,
			UnitsSold: r.UnitsSold,
			Revenue:   amount(r.Revenue),
			Cost:      amount(r.EstimatedCost),
			Profit:    amount(r.EstimatedProfit),
			Margin:    rate(r.Margin),
		}
	}))
	return nil
}

func (t tables) VisitFinancial(p *domain.FinancialReport) error {
	t[layout.SectionRevenueByCategory] = marshal(lo.Map(p.RevenueByCategory, func(r domain.CategoryFinancials, _ int) categoryFinanceRecord {
		return categoryFinanceRecord{
			CategoryID: r.CategoryID,
			Category:   r.Category,
			Revenue:    amount(r.Revenue),
			Cost:       amount(r.EstimatedCost),
			Margin:     amount(r.EstimatedMargin),
			MarginRate: rate(r.MarginRate),
		}
	}))
	t[layout.SectionPayments] = marshal(lo.Map(p.PaymentBreakdown, func(r domain.PaymentStatusSummary, _ int) paymentRecord {
		return paymentRecord{Status: r.Status.Label(), Code: string(r.Status), Orders: r.Count, Amount: amount(r.Amount)}
	}))
	t[layout.SectionDailyRevenue] = marshal(daily(p.DailyRevenue))
	return nil
}

func (t tables) VisitOrdersAnalysis(p *domain.OrdersAnalysisReport) error {
	t[layout.SectionStatusBreakdown] = marshal(statuses(p.StatusBreakdown))
	t[layout.SectionSalesTrends] = marshal(daily(p.DailyTrends))
	t[layout.SectionOrderSizes] = marshal(lo.Map(p.OrderSizeDistribution, func(r domain.OrderSizeBucket, _ int) sizeRecord {
		upper := ""
		if r.Max > 0 {
			upper, _ = amount(r.Max).MarshalCSV()
		}
		return sizeRecord{Band: r.Label, Min: amount(r.Min), Max: upper, Orders: r.Count, Revenue: amount(r.Revenue)}
	}))
	return nil
}

func products(rows []domain.ProductSales) []productRecord {
	return lo.Map(rows, func(r domain.ProductSales, _ int) productRecord {
		return productRecord{
			ProductID: r.ProductID,
			Name:      r.Name,
			Category:  r.Category,
			Price:     amount(r.Price),
			UnitsSold: r.UnitsSold,
			Revenue:   amount(r.Revenue),
		}
	})
}

func customers(rows []domain.CustomerSpend) []customerRecord {
	return lo.Map(rows, func(r domain.CustomerSpend, _ int) customerRecord {
		return customerRecord{
			CustomerID: r.CustomerID,
			Name:       r.Name,
			Email:      r.Email,
			Orders:     r.OrderCount,
			TotalSpent: amount(r.TotalSpent),
		}
	})
}

func daily(rows []domain.DailySales) []dailyRecord {
	return lo.Map(rows, func(r domain.DailySales, _ int) dailyRecord {
		return dailyRecord{Date: format.Date(r.Date), Orders: r.Orders, Revenue: amount(r.Revenue)}
	})
}

func categories(rows []domain.CategorySales) []categoryRecord {
	return lo.Map(rows, func(r domain.CategorySales, _ int) categoryRecord {
		return categoryRecord{
			CategoryID: r.CategoryID,
			Category:   r.Category,
			Products:   r.ProductCount,
			Quantity:   r.Quantity,
			Revenue:    amount(r.Revenue),
		}
	})
}

func statuses(rows []domain.StatusSummary) []statusRecord {
	return lo.Map(rows, func(r domain.StatusSummary, _ int) statusRecord {
		return statusRecord{
			Status:       r.Status.Label(),
			Code:         string(r.Status),
			Orders:       r.Count,
			Revenue:      amount(r.Revenue),
			AverageValue: amount(r.AverageValue),
		}
	})
}
