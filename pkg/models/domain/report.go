package domain

import "time"

// ReportID identifies one of the analytical reports the back office can produce
type ReportID string

const (
	ReportSalesSummary       ReportID = "sales-summary"
	ReportCustomerAnalysis   ReportID = "customer-analysis"
	ReportProductPerformance ReportID = "product-performance"
	ReportFinancial          ReportID = "financial-report"
	ReportOrdersAnalysis     ReportID = "orders-analysis"
)

// ReportIDs lists every supported report in display order
var ReportIDs = []ReportID{
	ReportSalesSummary,
	ReportCustomerAnalysis,
	ReportProductPerformance,
	ReportFinancial,
	ReportOrdersAnalysis,
}

func (id ReportID) Valid() bool {
	for _, known := range ReportIDs {
		if id == known {
			return true
		}
	}
	return false
}

func (id ReportID) String() string {
	return string(id)
}

// ReportDefinition describes a report for labeling and dispatch
type ReportDefinition struct {
	ID          ReportID
	Title       string
	Description string
	Category    string
}

// DateRange is a resolved reporting window. Start is never after End.
type DateRange struct {
	Token string
	Start time.Time
	End   time.Time
	Label string
}

// Days returns the length of the window in whole days
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Filters narrow the transactional data a report is computed from.
// Empty slices mean no restriction.
type Filters struct {
	Statuses    []OrderStatus
	CategoryIDs []string
}

func (f Filters) IsEmpty() bool {
	return len(f.Statuses) == 0 && len(f.CategoryIDs) == 0
}
