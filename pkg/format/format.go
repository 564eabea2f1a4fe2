// Package format holds the number and label formatting shared by the preview
// and every export format, so the same payload reads the same everywhere.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	CurrencySymbol = "$"
	DateLayout     = "2006-01-02"
)

// Currency renders an amount with thousands separators and two decimals, e.g. $1,234.50
func Currency(v float64) string {
	return CurrencySymbol + humanize.FormatFloat("#,###.##", v)
}

func Integer(v int64) string {
	return humanize.Comma(v)
}

func Number(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Percent renders a fraction as a percentage with one decimal
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Cell renders a layout cell for text based outputs
func Cell(c domain.Cell) string {
	switch c.Kind {
	case domain.CellInteger:
		return Integer(int64(c.Value))
	case domain.CellNumber:
		return Number(c.Value)
	case domain.CellCurrency:
		return Currency(c.Value)
	case domain.CellPercent:
		return Percent(c.Value)
	case domain.CellDate:
		return Date(c.Time)
	default:
		return c.Text
	}
}

// Cents rounds to two decimals and clamps non-finite or negative values to 0
func Cents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Ratio divides, defining the result as 0 when the denominator is 0
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Fraction is Ratio rounded to four decimals, enough for a one-decimal percentage
func Fraction(num, den float64) float64 {
	return decimal.NewFromFloat(Ratio(num, den)).Round(4).InexactFloat64()
}
