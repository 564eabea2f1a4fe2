package domain

type OrdersSummary struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// ProcessingMetrics is measured from delivered_at - created_at of delivered orders
type ProcessingMetrics struct {
	FulfilledOrders        int64   `json:"fulfilledOrders"`
	AverageProcessingHours float64 `json:"averageProcessingHours"`
	AverageProcessingDays  float64 `json:"averageProcessingDays"`
	Simulated              bool    `json:"simulated"`
}

// OrderSizeBucket counts orders whose total falls in [Min, Max). Max of 0 means unbounded.
type OrderSizeBucket struct {
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type OrdersAnalysisReport struct {
	Summary               OrdersSummary     `json:"summary"`
	StatusBreakdown       []StatusSummary   `json:"statusBreakdown"`
	DailyTrends           []DailySales      `json:"dailyTrends"`
	ProcessingMetrics     ProcessingMetrics `json:"processingMetrics"`
	OrderSizeDistribution []OrderSizeBucket `json:"orderSizeDistribution"`
}

func (p *OrdersAnalysisReport) ReportID() ReportID { return ReportOrdersAnalysis }

func (p *OrdersAnalysisReport) Accept(v PayloadVisitor) error {
	return v.VisitOrdersAnalysis(p)
}
