package domain

import "time"

// Document is the format-neutral layout of a report: a title block followed by
// ordered sections, each a small table. Paginated, spreadsheet and terminal
// renderers all draw from the same Document so their numbers agree.
type Document struct {
	ReportID    ReportID
	Title       string
	Description string
	Period      TimePeriod
	GeneratedAt time.Time
	Sections    []DocumentSection
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Label    string
	Duration int // in days
}

// DocumentSection represents a logical section in the report.
// Name doubles as the spreadsheet tab name and must stay within 31 characters.
type DocumentSection struct {
	Name    string
	Title   string
	Columns []Column
	Rows    [][]Cell
}

func (s DocumentSection) IsEmpty() bool {
	return len(s.Rows) == 0
}

type CellKind int

const (
	CellText CellKind = iota
	CellInteger
	CellNumber
	CellCurrency
	CellPercent
	CellDate
)

type Column struct {
	Title string
	Kind  CellKind
}

// Cell holds either a text value or a numeric value; Kind decides how it is drawn.
// Percent values are fractions (0.25 means 25%).
type Cell struct {
	Kind  CellKind
	Text  string
	Value float64
	Time  time.Time
}

func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

func IntegerCell(v int64) Cell { return Cell{Kind: CellInteger, Value: float64(v)} }

func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Value: v} }

func CurrencyCell(v float64) Cell { return Cell{Kind: CellCurrency, Value: v} }

func PercentCell(v float64) Cell { return Cell{Kind: CellPercent, Value: v} }

func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }
