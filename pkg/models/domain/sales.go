package domain

type SalesSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int64   `json:"totalOrders"`
	CompletedOrders   int64   `json:"completedOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	UnitsSold         int64   `json:"unitsSold"`
	ConversionRate    Measure `json:"conversionRate"`
}

type SalesSummaryReport struct {
	Summary          SalesSummary    `json:"summary"`
	TopProducts      []ProductSales  `json:"topProducts"`
	TopCustomers     []CustomerSpend `json:"topCustomers"`
	SalesTrends      []DailySales    `json:"salesTrends"`
	CategoryAnalysis []CategorySales `json:"categoryAnalysis"`
	StatusBreakdown  []StatusSummary `json:"statusBreakdown"`
}

func (p *SalesSummaryReport) ReportID() ReportID { return ReportSalesSummary }

func (p *SalesSummaryReport) Accept(v PayloadVisitor) error { return v.VisitSalesSummary(p) }

type FinancialSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int64   `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	EstimatedCost     float64 `json:"estimatedCost"`
	EstimatedProfit   float64 `json:"estimatedProfit"`
	ProfitMargin      float64 `json:"profitMargin"`
	CostSimulated     bool    `json:"costSimulated"`
}

type CategoryFinancials struct {
	CategoryID      string  `json:"categoryId"`
	Category        string  `json:"category"`
	Revenue         float64 `json:"revenue"`
	EstimatedCost   float64 `json:"estimatedCost"`
	EstimatedMargin float64 `json:"estimatedMargin"`
	MarginRate      float64 `json:"marginRate"`
	Simulated       bool    `json:"simulated"`
}

type PaymentStatusSummary struct {
	Status PaymentStatus `json:"status"`
	Label  string        `json:"label"`
	Count  int64         `json:"count"`
	Amount float64       `json:"amount"`
}

type LossSummary struct {
	CancelledOrders int64   `json:"cancelledOrders"`
	CancelledAmount float64 `json:"cancelledAmount"`
	LossRate        float64 `json:"lossRate"`
}

type FinancialReport struct {
	Summary           FinancialSummary       `json:"summary"`
	RevenueByCategory []CategoryFinancials   `json:"revenueByCategory"`
	PaymentBreakdown  []PaymentStatusSummary `json:"paymentBreakdown"`
	Losses            LossSummary            `json:"losses"`
	DailyRevenue      []DailySales           `json:"dailyRevenue"`
}

func (p *FinancialReport) ReportID() ReportID { return ReportFinancial }

func (p *FinancialReport) Accept(v PayloadVisitor) error { return v.VisitFinancial(p) }
