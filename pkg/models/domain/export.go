package domain

import (
	"strings"
	"time"
)

type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
	FormatXLSX  ExportFormat = "xlsx"
	FormatCSV   ExportFormat = "csv"
)

// ParseExportFormat normalizes a requested format name. The boolean is false for unknown names.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, true
	case FormatExcel, FormatXLSX:
		return FormatXLSX, true
	case FormatCSV:
		return FormatCSV, true
	default:
		return "", false
	}
}

// Extension is the file suffix; both spreadsheet names map to xlsx
func (f ExportFormat) Extension() string {
	switch f {
	case FormatExcel, FormatXLSX:
		return "xlsx"
	default:
		return string(f)
	}
}

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatExcel, FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// ReportHeader is the descriptive context every renderer prints above the data
type ReportHeader struct {
	Definition  ReportDefinition
	Range       DateRange
	GeneratedAt time.Time
}

// NamedBuffer is a rendered export ready to be handed to a transport
type NamedBuffer struct {
	Name        string
	ContentType string
	Data        []byte
}
