package domain

type CustomerSummary struct {
	TotalCustomers       int64   `json:"totalCustomers"`
	NewCustomers         int64   `json:"newCustomers"`
	CustomersWithOrders  int64   `json:"customersWithOrders"`
	RepeatCustomers      int64   `json:"repeatCustomers"`
	RepeatCustomerRate   float64 `json:"repeatCustomerRate"`
	AverageLifetimeValue float64 `json:"averageLifetimeValue"`
}

type RegionCount struct {
	Region    string `json:"region"`
	Customers int64  `json:"customers"`
}

// Segmentation classifies the top-customer sample, not the whole customer base.
// High+Medium+Low always equals SampleSize.
type Segmentation struct {
	High       int64 `json:"high"`
	Medium     int64 `json:"medium"`
	Low        int64 `json:"low"`
	SampleSize int64 `json:"sampleSize"`
}

type CustomerAnalysisReport struct {
	Summary                CustomerSummary `json:"summary"`
	TopCustomers           []CustomerSpend `json:"topCustomers"`
	GeographicDistribution []RegionCount   `json:"geographicDistribution"`
	Segmentation           Segmentation    `json:"segmentation"`
}

func (p *CustomerAnalysisReport) ReportID() ReportID { return ReportCustomerAnalysis }

func (p *CustomerAnalysisReport) Accept(v PayloadVisitor) error {
	return v.VisitCustomerAnalysis(p)
}
