// Package xlsx renders reports as workbooks with one sheet per section
package xlsx

import (
	"context"
	"fmt"
	"time"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

const (
	textWidth   = 32.0
	numberWidth = 16.0
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Format() domain.ExportFormat {
	return domain.FormatXLSX
}

func (r *Renderer) Render(ctx context.Context, payload domain.Payload, header domain.ReportHeader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := layout.Build(payload, header)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("unable to lay out report").Mark(ierr.ErrRender)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	data, err := write(f, doc)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("unable to write report workbook").Mark(ierr.ErrRender)
	}
	return data, nil
}

func write(f *excelize.File, doc *domain.Document) ([]byte, error) {
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	props := &excelize.DocProperties{
		Title:       doc.Title,
		Description: doc.Description,
		Subject:     doc.Period.Label,
		Creator:     "storefront reports",
	}
	if !doc.GeneratedAt.IsZero() {
		props.Created = doc.GeneratedAt.UTC().Format(time.RFC3339)
	}
	if err := f.SetDocProps(props); err != nil {
		return nil, fmt.Errorf("set properties: %w", err)
	}

	for i, s := range layout.NonEmpty(doc.Sections) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("add sheet %q: %w", s.Name, err)
		}
		if err := writeSection(f, s, styles); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(f *excelize.File, s domain.DocumentSection, styles *styles) error {
	for i, c := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.Name, cell, c.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, cell, cell, styles.header); err != nil {
			return err
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := numberWidth
		if c.Kind == domain.CellText {
			width = textWidth
		}
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.Name, cell, raw(value)); err != nil {
				return err
			}
			if style, ok := styles.forKind(value.Kind); ok {
				if err := f.SetCellStyle(s.Name, cell, cell, style); err != nil {
					return err
				}
			}
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// raw keeps numbers numeric; presentation is left to the cell number format
func raw(c domain.Cell) interface{} {
	switch c.Kind {
	case domain.CellInteger:
		return int64(c.Value)
	case domain.CellNumber, domain.CellCurrency, domain.CellPercent:
		return c.Value
	case domain.CellDate:
		return format.Date(c.Time)
	default:
		return c.Text
	}
}

type styles struct {
	header   int
	integer  int
	number   int
	currency int
	percent  int
}

func newStyles(f *excelize.File) (*styles, error) {
	var (
		s   styles
		err error
	)
	currency := `"$"#,##0.00`
	percent := "0.0%"
	number := "#,##0.00"

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2962FF"}, Pattern: 1},
	}); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if s.integer, err = f.NewStyle(&excelize.Style{NumFmt: 3}); err != nil {
		return nil, fmt.Errorf("integer style: %w", err)
	}
	if s.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &number}); err != nil {
		return nil, fmt.Errorf("number style: %w", err)
	}
	if s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currency}); err != nil {
		return nil, fmt.Errorf("currency style: %w", err)
	}
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &percent}); err != nil {
		return nil, fmt.Errorf("percent style: %w", err)
	}
	return &s, nil
}

func (s *styles) forKind(kind domain.CellKind) (int, bool) {
	switch kind {
	case domain.CellInteger:
		return s.integer, true
	case domain.CellNumber:
		return s.number, true
	case domain.CellCurrency:
		return s.currency, true
	case domain.CellPercent:
		return s.percent, true
	default:
		return 0, false
	}
}
