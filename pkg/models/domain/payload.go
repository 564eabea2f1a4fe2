package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the typed result of one report aggregation. Every report variant
// implements it, and consumers dispatch through Accept so that adding a report
// type is a compile-time change for every renderer.
type Payload interface {
	ReportID() ReportID
	Accept(v PayloadVisitor) error
}

// PayloadVisitor is implemented by everything that consumes payloads per report type
type PayloadVisitor interface {
	VisitSalesSummary(p *SalesSummaryReport) error
	VisitCustomerAnalysis(p *CustomerAnalysisReport) error
	VisitProductPerformance(p *ProductPerformanceReport) error
	VisitFinancial(p *FinancialReport) error
	VisitOrdersAnalysis(p *OrdersAnalysisReport) error
}

// NewPayload returns an empty payload for the given report
func NewPayload(id ReportID) (Payload, error) {
	switch id {
	case ReportSalesSummary:
		return &SalesSummaryReport{}, nil
	case ReportCustomerAnalysis:
		return &CustomerAnalysisReport{}, nil
	case ReportProductPerformance:
		return &ProductPerformanceReport{}, nil
	case ReportFinancial:
		return &FinancialReport{}, nil
	case ReportOrdersAnalysis:
		return &OrdersAnalysisReport{}, nil
	default:
		return nil, fmt.Errorf("unknown report id: %q", id)
	}
}

// DecodePayload parses a previously serialized payload of the given report type
func DecodePayload(id ReportID, raw []byte) (Payload, error) {
	payload, err := NewPayload(id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", id, err)
	}
	return payload, nil
}

// Measure is a scalar that may come from a fixed assumption rather than data
type Measure struct {
	Value     float64 `json:"value"`
	Simulated bool    `json:"simulated"`
}

type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	UnitsSold int64   `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

type CustomerSpend struct {
	CustomerID string  `json:"customerId"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	TotalSpent float64 `json:"totalSpent"`
	OrderCount int64   `json:"orderCount"`
}

type DailySales struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int64     `json:"orders"`
}

type CategorySales struct {
	CategoryID   string  `json:"categoryId"`
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Quantity     int64   `json:"quantity"`
	ProductCount int64   `json:"productCount"`
}

type StatusSummary struct {
	Status       OrderStatus `json:"status"`
	Label        string      `json:"label"`
	Count        int64       `json:"count"`
	Revenue      float64     `json:"revenue"`
	AverageValue float64     `json:"averageValue"`
}
