// Package pdf renders reports as paginated A4 documents
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
)

const (
	margin     = 10.0
	pageBreakY = 270.0
	rowHeight  = 7.0
	fontFamily = "Helvetica"
)

type rgb struct{ r, g, b int }

// theme is the header fill of a table; tables cycle through them
var themes = []rgb{
	{r: 41, g: 98, b: 255},
	{r: 46, g: 125, b: 50},
	{r: 123, g: 31, b: 162},
	{r: 239, g: 108, b: 0},
}

var stripe = rgb{r: 245, g: 245, b: 245}

type Settings struct {
	// Compress deflates page streams. Off makes the output greppable.
	Compress bool
}

type Renderer struct {
	settings Settings
}

func NewRenderer(settings Settings) *Renderer {
	return &Renderer{settings: settings}
}

func (r *Renderer) Format() domain.ExportFormat {
	return domain.FormatPDF
}

func (r *Renderer) Render(ctx context.Context, payload domain.Payload, header domain.ReportHeader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := layout.Build(payload, header)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("unable to lay out report").Mark(ierr.ErrRender)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.settings.Compress)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
		pdf.SetModificationDate(doc.GeneratedAt)
	}
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("storefront reports", true)

	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 6, w.tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w.title(doc)

	sections := layout.NonEmpty(doc.Sections)
	if len(sections) == 0 {
		w.note("Sin datos para el periodo seleccionado")
	}
	for i, s := range sections {
		w.table(s, themes[i%len(themes)])
	}

	if err := pdf.Error(); err != nil {
		return nil, ierr.WithError(err).WithHint("unable to draw report document").Mark(ierr.ErrRender)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).WithHint("unable to write report document").Mark(ierr.ErrRender)
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) title(doc *domain.Document) {
	w.pdf.SetTextColor(33, 33, 33)
	w.pdf.SetFont(fontFamily, "B", 18)
	w.pdf.CellFormat(0, 10, w.tr(doc.Title), "", 1, "L", false, 0, "")

	w.pdf.SetFont(fontFamily, "", 10)
	if doc.Description != "" {
		w.pdf.CellFormat(0, 6, w.tr(doc.Description), "", 1, "L", false, 0, "")
	}
	if !doc.Period.Start.IsZero() {
		period := fmt.Sprintf("Periodo: %s a %s", format.Date(doc.Period.Start), format.Date(doc.Period.End))
		if doc.Period.Label != "" {
			period = fmt.Sprintf("%s (%s)", period, doc.Period.Label)
		}
		w.pdf.CellFormat(0, 6, w.tr(period), "", 1, "L", false, 0, "")
	}
	if !doc.GeneratedAt.IsZero() {
		w.pdf.CellFormat(0, 6, w.tr("Generado: "+doc.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	}
	w.pdf.Ln(4)
}

func (w *writer) note(text string) {
	w.pdf.SetFont(fontFamily, "I", 10)
	w.pdf.CellFormat(0, rowHeight, w.tr(text), "", 1, "L", false, 0, "")
}

// ensure starts a new page when the next block would cross the threshold
func (w *writer) ensure(height float64) bool {
	if w.pdf.GetY()+height > pageBreakY {
		w.pdf.AddPage()
		return true
	}
	return false
}

func (w *writer) table(s domain.DocumentSection, theme rgb) {
	widths := w.widths(s.Columns)

	w.ensure(rowHeight*3 + 4)
	w.pdf.SetTextColor(33, 33, 33)
	w.pdf.SetFont(fontFamily, "B", 12)
	w.pdf.CellFormat(0, 8, w.tr(s.Title), "", 1, "L", false, 0, "")
	w.header(s.Columns, widths, theme)

	w.pdf.SetFont(fontFamily, "", 9)
	for i, row := range s.Rows {
		if w.ensure(rowHeight) {
			w.header(s.Columns, widths, theme)
			w.pdf.SetFont(fontFamily, "", 9)
		}
		w.pdf.SetTextColor(33, 33, 33)
		w.pdf.SetFillColor(stripe.r, stripe.g, stripe.b)
		for j, cell := range row {
			if j >= len(widths) {
				break
			}
			text := w.fit(format.Cell(cell), widths[j])
			w.pdf.CellFormat(widths[j], rowHeight, text, "B", 0, align(cell.Kind), i%2 == 1, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(6)
}

func (w *writer) header(columns []domain.Column, widths []float64, theme rgb) {
	w.pdf.SetFont(fontFamily, "B", 9)
	w.pdf.SetFillColor(theme.r, theme.g, theme.b)
	w.pdf.SetTextColor(255, 255, 255)
	for i, c := range columns {
		w.pdf.CellFormat(widths[i], rowHeight, w.fit(c.Title, widths[i]), "", 0, align(c.Kind), true, 0, "")
	}
	w.pdf.Ln(-1)
}

// widths gives text columns twice the share of numeric ones
func (w *writer) widths(columns []domain.Column) []float64 {
	pageWidth, _ := w.pdf.GetPageSize()
	usable := pageWidth - 2*margin

	shares := make([]float64, len(columns))
	var total float64
	for i, c := range columns {
		shares[i] = 1
		if c.Kind == domain.CellText {
			shares[i] = 2
		}
		total += shares[i]
	}
	for i := range shares {
		shares[i] = usable * shares[i] / total
	}
	return shares
}

// fit translates and truncates text to the cell width
func (w *writer) fit(text string, width float64) string {
	out := w.tr(text)
	limit := width - 2
	if w.pdf.GetStringWidth(out) <= limit {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out = w.tr(string(runes) + "...")
		if w.pdf.GetStringWidth(out) <= limit {
			return out
		}
	}
	return ""
}

func align(kind domain.CellKind) string {
	if kind == domain.CellText {
		return "L"
	}
	return "R"
}
