// Package layout turns report payloads into format-neutral documents. Every
// export format and the terminal preview render the same Document, so section
// names, column order and status labels are decided here once.
package layout

import (
	"fmt"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/samber/lo"
)

// Section names double as spreadsheet tab names and CSV block labels
const (
	SectionSummary           = "Resumen"
	SectionTopProducts       = "Top Productos"
	SectionTopCustomers      = "Top Clientes"
	SectionSalesTrends       = "Tendencia de Ventas"
	SectionCategorySales     = "Ventas por Categoría"
	SectionStatusBreakdown   = "Pedidos por Estado"
	SectionRegions           = "Distribución Geográfica"
	SectionSegmentation      = "Segmentación"
	SectionBestSellers       = "Más Vendidos"
	SectionInventory         = "Inventario"
	SectionProfitability     = "Rentabilidad"
	SectionRevenueByCategory = "Ingresos por Categoría"
	SectionPayments          = "Estado de Pagos"
	SectionLosses            = "Pérdidas"
	SectionDailyRevenue      = "Ingresos Diarios"
	SectionProcessing        = "Tiempos de Entrega"
	SectionOrderSizes        = "Tamaño de Pedidos"
)

// LabelTotalRevenue is the summary row every report with revenue carries
const LabelTotalRevenue = "Total de Ingresos"

const simulatedSuffix = " (estimado)"

var metricColumns = []domain.Column{
	{Title: "Métrica", Kind: domain.CellText},
	{Title: "Valor", Kind: domain.CellText},
}

// Build lays out a payload under the given header
func Build(payload domain.Payload, header domain.ReportHeader) (*domain.Document, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload is nil")
	}
	if header.Definition.ID != "" && header.Definition.ID != payload.ReportID() {
		return nil, fmt.Errorf("header is for %q but payload is %q", header.Definition.ID, payload.ReportID())
	}

	b := &builder{}
	if err := payload.Accept(b); err != nil {
		return nil, fmt.Errorf("layout %s: %w", payload.ReportID(), err)
	}

	title := header.Definition.Title
	if title == "" {
		title = payload.ReportID().String()
	}
	return &domain.Document{
		ReportID:    payload.ReportID(),
		Title:       title,
		Description: header.Definition.Description,
		Period: domain.TimePeriod{
			Start:    header.Range.Start,
			End:      header.Range.End,
			Label:    header.Range.Label,
			Duration: header.Range.Days(),
		},
		GeneratedAt: header.GeneratedAt,
		Sections:    b.sections,
	}, nil
}

// NonEmpty drops sections without rows
func NonEmpty(sections []domain.DocumentSection) []domain.DocumentSection {
	return lo.Reject(sections, func(s domain.DocumentSection, _ int) bool { return s.IsEmpty() })
}

type builder struct {
	sections []domain.DocumentSection
}

func (b *builder) add(name string, columns []domain.Column, rows [][]domain.Cell) {
	if rows == nil {
		rows = [][]domain.Cell{}
	}
	b.sections = append(b.sections, domain.DocumentSection{
		Name:    name,
		Title:   name,
		Columns: columns,
		Rows:    rows,
	})
}

type metric struct {
	label string
	cell  domain.Cell
}

func (b *builder) metrics(name string, ms ...metric) {
	b.add(name, metricColumns, lo.Map(ms, func(m metric, _ int) []domain.Cell {
		return []domain.Cell{domain.TextCell(m.label), m.cell}
	}))
}

func label(text string, simulated bool) string {
	if simulated {
		return text + simulatedSuffix
	}
	return text
}

func (b *builder) VisitSalesSummary(p *domain.SalesSummaryReport) error {
	s := p.Summary
	b.metrics(SectionSummary,
		metric{LabelTotalRevenue, domain.CurrencyCell(s.TotalRevenue)},
		metric{"Total de Pedidos", domain.IntegerCell(s.TotalOrders)},
		metric{"Pedidos Completados", domain.IntegerCell(s.CompletedOrders)},
		metric{"Valor Promedio por Pedido", domain.CurrencyCell(s.AverageOrderValue)},
		metric{"Unidades Vendidas", domain.IntegerCell(s.UnitsSold)},
		metric{label("Tasa de Conversión", s.ConversionRate.Simulated), domain.PercentCell(s.ConversionRate.Value)},
	)
	b.productSales(SectionTopProducts, p.TopProducts)
	b.customers(SectionTopCustomers, p.TopCustomers)
	b.daily(SectionSalesTrends, p.SalesTrends)
	b.categories(SectionCategorySales, p.CategoryAnalysis)
	b.statuses(p.StatusBreakdown)
	return nil
}

func (b *builder) VisitCustomerAnalysis(p *domain.CustomerAnalysisReport) error {
	s := p.Summary
	b.metrics(SectionSummary,
		metric{"Total de Clientes", domain.IntegerCell(s.TotalCustomers)},
		metric{"Clientes Nuevos", domain.IntegerCell(s.NewCustomers)},
		metric{"Clientes con Pedidos", domain.IntegerCell(s.CustomersWithOrders)},
		metric{"Clientes Recurrentes", domain.IntegerCell(s.RepeatCustomers)},
		metric{"Tasa de Recurrencia", domain.PercentCell(s.RepeatCustomerRate)},
		metric{"Valor de Vida Promedio", domain.CurrencyCell(s.AverageLifetimeValue)},
	)
	b.customers(SectionTopCustomers, p.TopCustomers)
	b.add(SectionRegions,
		[]domain.Column{{Title: "Región", Kind: domain.CellText}, {Title: "Clientes", Kind: domain.CellInteger}},
		lo.Map(p.GeographicDistribution, func(r domain.RegionCount, _ int) []domain.Cell {
			return []domain.Cell{domain.TextCell(r.Region), domain.IntegerCell(r.Customers)}
		}),
	)

	seg := p.Segmentation
	var rows [][]domain.Cell
	if seg.SampleSize > 0 {
		rows = [][]domain.Cell{
			{domain.TextCell("Alto (más de $1,000)"), domain.IntegerCell(seg.High)},
			{domain.TextCell("Medio ($500 - $1,000)"), domain.IntegerCell(seg.Medium)},
			{domain.TextCell("Bajo (menos de $500)"), domain.IntegerCell(seg.Low)},
		}
	}
	b.add(SectionSegmentation,
		[]domain.Column{{Title: "Segmento", Kind: domain.CellText}, {Title: "Clientes", Kind: domain.CellInteger}},
		rows,
	)
	return nil
}

func (b *builder) VisitProductPerformance(p *domain.ProductPerformanceReport) error {
	s := p.Summary
	b.metrics(SectionSummary,
		metric{LabelTotalRevenue, domain.CurrencyCell(s.TotalRevenue)},
		metric{"Unidades Vendidas", domain.IntegerCell(s.TotalUnitsSold)},
		metric{"Productos con Ventas", domain.IntegerCell(s.ProductsWithSales)},
	)
	b.productSales(SectionBestSellers, p.BestSellers)
	b.categories(SectionCategorySales, p.CategoryPerformance)

	inv := p.InventoryInsights
	b.metrics(SectionInventory,
		metric{"Productos Activos", domain.IntegerCell(inv.ActiveProducts)},
		metric{fmt.Sprintf("Stock Bajo (menos de %d)", inv.LowStockThreshold), domain.IntegerCell(inv.LowStockCount)},
		metric{"Sin Stock", domain.IntegerCell(inv.OutOfStockCount)},
		metric{"Stock Promedio", domain.NumberCell(inv.AverageStock)},
	)

	b.add(SectionProfitability,
		[]domain.Column{
			{Title: "Producto", Kind: domain.CellText},
			{Title: "Categoría", Kind: domain.CellText},
			{Title: "Unidades", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
			{Title: "Costo Estimado", Kind: domain.CellCurrency},
			{Title: "Ganancia Estimada", Kind: domain.CellCurrency},
			{Title: "Margen", Kind: domain.CellPercent},
		},
		lo.Map(p.Profitability, func(r domain.ProductProfit, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Name),
				domain.TextCell(r.Category),
				domain.IntegerCell(r.UnitsSold),
				domain.CurrencyCell(r.Revenue),
				domain.CurrencyCell(r.EstimatedCost),
				domain.CurrencyCell(r.EstimatedProfit),
				domain.PercentCell(r.Margin),
			}
		}),
	)
	return nil
}

func (b *builder) VisitFinancial(p *domain.FinancialReport) error {
	s := p.Summary
	b.metrics(SectionSummary,
		metric{LabelTotalRevenue, domain.CurrencyCell(s.TotalRevenue)},
		metric{"Total de Pedidos", domain.IntegerCell(s.TotalOrders)},
		metric{"Valor Promedio por Pedido", domain.CurrencyCell(s.AverageOrderValue)},
		metric{label("Costo", s.CostSimulated), domain.CurrencyCell(s.EstimatedCost)},
		metric{label("Ganancia", s.CostSimulated), domain.CurrencyCell(s.EstimatedProfit)},
		metric{label("Margen de Ganancia", s.CostSimulated), domain.PercentCell(s.ProfitMargin)},
	)
	b.add(SectionRevenueByCategory,
		[]domain.Column{
			{Title: "Categoría", Kind: domain.CellText},
			{Title: "Ingresos", Kind: domain.CellCurrency},
			{Title: "Costo Estimado", Kind: domain.CellCurrency},
			{Title: "Margen Estimado", Kind: domain.CellCurrency},
			{Title: "Margen", Kind: domain.CellPercent},
		},
		lo.Map(p.RevenueByCategory, func(r domain.CategoryFinancials, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Category),
				domain.CurrencyCell(r.Revenue),
				domain.CurrencyCell(r.EstimatedCost),
				domain.CurrencyCell(r.EstimatedMargin),
				domain.PercentCell(r.MarginRate),
			}
		}),
	)
	b.add(SectionPayments,
		[]domain.Column{
			{Title: "Estado", Kind: domain.CellText},
			{Title: "Pedidos", Kind: domain.CellInteger},
			{Title: "Monto", Kind: domain.CellCurrency},
		},
		lo.Map(p.PaymentBreakdown, func(r domain.PaymentStatusSummary, _ int) []domain.Cell {
			return []domain.Cell{domain.TextCell(r.Status.Label()), domain.IntegerCell(r.Count), domain.CurrencyCell(r.Amount)}
		}),
	)

	var losses [][]domain.Cell
	if p.Losses.CancelledOrders > 0 {
		losses = [][]domain.Cell{
			{domain.TextCell("Pedidos Cancelados"), domain.IntegerCell(p.Losses.CancelledOrders)},
			{domain.TextCell("Monto Cancelado"), domain.CurrencyCell(p.Losses.CancelledAmount)},
			{domain.TextCell("Tasa de Pérdida"), domain.PercentCell(p.Losses.LossRate)},
		}
	}
	b.add(SectionLosses, metricColumns, losses)
	b.daily(SectionDailyRevenue, p.DailyRevenue)
	return nil
}

func (b *builder) VisitOrdersAnalysis(p *domain.OrdersAnalysisReport) error {
	s := p.Summary
	b.metrics(SectionSummary,
		metric{"Total de Pedidos", domain.IntegerCell(s.TotalOrders)},
		metric{LabelTotalRevenue, domain.CurrencyCell(s.TotalRevenue)},
		metric{"Valor Promedio por Pedido", domain.CurrencyCell(s.AverageOrderValue)},
	)
	b.statuses(p.StatusBreakdown)
	b.daily(SectionSalesTrends, p.DailyTrends)

	pm := p.ProcessingMetrics
	var processing [][]domain.Cell
	if pm.FulfilledOrders > 0 {
		processing = [][]domain.Cell{
			{domain.TextCell("Pedidos Entregados"), domain.IntegerCell(pm.FulfilledOrders)},
			{domain.TextCell(label("Horas Promedio", pm.Simulated)), domain.NumberCell(pm.AverageProcessingHours)},
			{domain.TextCell(label("Días Promedio", pm.Simulated)), domain.NumberCell(pm.AverageProcessingDays)},
		}
	}
	b.add(SectionProcessing, metricColumns, processing)

	b.add(SectionOrderSizes,
		[]domain.Column{
			{Title: "Rango", Kind: domain.CellText},
			{Title: "Pedidos", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
		},
		lo.Map(p.OrderSizeDistribution, func(r domain.OrderSizeBucket, _ int) []domain.Cell {
			return []domain.Cell{domain.TextCell(r.Label), domain.IntegerCell(r.Count), domain.CurrencyCell(r.Revenue)}
		}),
	)
	return nil
}

func (b *builder) productSales(name string, rows []domain.ProductSales) {
	b.add(name,
		[]domain.Column{
			{Title: "Producto", Kind: domain.CellText},
			{Title: "Categoría", Kind: domain.CellText},
			{Title: "Precio", Kind: domain.CellCurrency},
			{Title: "Unidades", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
		},
		lo.Map(rows, func(r domain.ProductSales, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Name),
				domain.TextCell(r.Category),
				domain.CurrencyCell(r.Price),
				domain.IntegerCell(r.UnitsSold),
				domain.CurrencyCell(r.Revenue),
			}
		}),
	)
}

func (b *builder) customers(name string, rows []domain.CustomerSpend) {
	b.add(name,
		[]domain.Column{
			{Title: "Cliente", Kind: domain.CellText},
			{Title: "Email", Kind: domain.CellText},
			{Title: "Pedidos", Kind: domain.CellInteger},
			{Title: "Total Gastado", Kind: domain.CellCurrency},
		},
		lo.Map(rows, func(r domain.CustomerSpend, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Name),
				domain.TextCell(r.Email),
				domain.IntegerCell(r.OrderCount),
				domain.CurrencyCell(r.TotalSpent),
			}
		}),
	)
}

func (b *builder) daily(name string, rows []domain.DailySales) {
	b.add(name,
		[]domain.Column{
			{Title: "Fecha", Kind: domain.CellDate},
			{Title: "Pedidos", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
		},
		lo.Map(rows, func(r domain.DailySales, _ int) []domain.Cell {
			return []domain.Cell{domain.DateCell(r.Date), domain.IntegerCell(r.Orders), domain.CurrencyCell(r.Revenue)}
		}),
	)
}

func (b *builder) categories(name string, rows []domain.CategorySales) {
	b.add(name,
		[]domain.Column{
			{Title: "Categoría", Kind: domain.CellText},
			{Title: "Productos", Kind: domain.CellInteger},
			{Title: "Unidades", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
		},
		lo.Map(rows, func(r domain.CategorySales, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Category),
				domain.IntegerCell(r.ProductCount),
				domain.IntegerCell(r.Quantity),
				domain.CurrencyCell(r.Revenue),
			}
		}),
	)
}

func (b *builder) statuses(rows []domain.StatusSummary) {
	b.add(SectionStatusBreakdown,
		[]domain.Column{
			{Title: "Estado", Kind: domain.CellText},
			{Title: "Pedidos", Kind: domain.CellInteger},
			{Title: "Ingresos", Kind: domain.CellCurrency},
			{Title: "Valor Promedio", Kind: domain.CellCurrency},
		},
		lo.Map(rows, func(r domain.StatusSummary, _ int) []domain.Cell {
			return []domain.Cell{
				domain.TextCell(r.Status.Label()),
				domain.IntegerCell(r.Count),
				domain.CurrencyCell(r.Revenue),
				domain.CurrencyCell(r.AverageValue),
			}
		}),
	)
}
