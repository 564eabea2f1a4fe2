package api

import (
	"encoding/json"
	"time"
)

type ReportDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type ListReportsResponse struct {
	Success bool               `json:"success"`
	Reports []ReportDefinition `json:"reports"`
}

type DateRange struct {
	Token string    `json:"token"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type Filters struct {
	Statuses    []string `json:"statuses,omitempty" validate:"omitempty,dive,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	CategoryIDs []string `json:"categoryIds,omitempty" validate:"omitempty,dive,required"`
}

// GenerateReportRequest accepts reportType as an alias of reportId
type GenerateReportRequest struct {
	ReportID   string   `json:"reportId" validate:"required_without=ReportType"`
	ReportType string   `json:"reportType" validate:"required_without=ReportID"`
	DateRange  string   `json:"dateRange" validate:"omitempty,max=16"`
	Filters    *Filters `json:"filters,omitempty" validate:"omitempty"`
}

// ExportReportRequest carries an optional payload from a previous preview in customData
type ExportReportRequest struct {
	ReportID   string          `json:"reportId" validate:"required"`
	CustomData json.RawMessage `json:"customData,omitempty"`
	DateRange  string          `json:"dateRange" validate:"omitempty,max=16"`
	Format     string          `json:"format" validate:"required,oneof=pdf excel xlsx csv PDF EXCEL XLSX CSV"`
	Filters    *Filters        `json:"filters,omitempty" validate:"omitempty"`
}

type ReportResponse struct {
	Success     bool        `json:"success"`
	ReportID    string      `json:"reportId"`
	Data        interface{} `json:"data"`
	GeneratedAt time.Time   `json:"generatedAt"`
	DateRange   DateRange   `json:"dateRange"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}
