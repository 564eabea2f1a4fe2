package domain

type ProductSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalUnitsSold    int64   `json:"totalUnitsSold"`
	ProductsWithSales int64   `json:"productsWithSales"`
}

type InventoryInsights struct {
	ActiveProducts    int64   `json:"activeProducts"`
	LowStockCount     int64   `json:"lowStockCount"`
	OutOfStockCount   int64   `json:"outOfStockCount"`
	AverageStock      float64 `json:"averageStock"`
	LowStockThreshold int64   `json:"lowStockThreshold"`
}

type ProductProfit struct {
	ProductID       string  `json:"productId"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	UnitsSold       int64   `json:"unitsSold"`
	Revenue         float64 `json:"revenue"`
	EstimatedCost   float64 `json:"estimatedCost"`
	EstimatedProfit float64 `json:"estimatedProfit"`
	Margin          float64 `json:"margin"`
	Simulated       bool    `json:"simulated"`
}

type ProductPerformanceReport struct {
	Summary             ProductSummary    `json:"summary"`
	BestSellers         []ProductSales    `json:"bestSellers"`
	CategoryPerformance []CategorySales   `json:"categoryPerformance"`
	InventoryInsights   InventoryInsights `json:"inventoryInsights"`
	Profitability       []ProductProfit   `json:"profitability"`
}

func (p *ProductPerformanceReport) ReportID() ReportID { return ReportProductPerformance }

func (p *ProductPerformanceReport) Accept(v PayloadVisitor) error {
	return v.VisitProductPerformance(p)
}
