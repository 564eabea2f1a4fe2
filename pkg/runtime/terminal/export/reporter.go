package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/format"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
)

type TableConfig struct {
	MaxColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 40,
	}
}

// Reporter prints a report document as plain text tables
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type table struct {
	Title  string
	Widths []int
	Right  []bool
	Header []string
	Rows   [][]string
}

const tmpl = `
{{.Title}}
{{if .Description}}{{.Description}}
{{end}}
Periodo: {{date .Period.Start}} a {{date .Period.End}} ({{.Period.Label}})
Generado: {{datetime .GeneratedAt}}
{{range $t := tables .Sections}}
=== {{.Title}} ===
{{separator .}}
{{formatRow . .Header}}
{{separator .}}
{{range $row := .Rows}}{{formatRow $t $row}}
{{end}}{{separator .}}
{{end}}`

func (c *Reporter) Handle(doc *domain.Document) error {
	funcMap := template.FuncMap{
		"date":     format.Date,
		"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"tables":   c.tables,
		"formatRow": func(t table, cells []string) string {
			parts := make([]string, len(cells))
			for i, cell := range cells {
				pad := strings.Repeat(" ", t.Widths[i]-utf8.RuneCountInString(cell))
				if t.Right[i] {
					parts[i] = pad + cell
				} else {
					parts[i] = cell + pad
				}
			}
			return "| " + strings.Join(parts, " | ") + " |"
		},
		"separator": func(t table) string {
			parts := make([]string, len(t.Widths))
			for i, w := range t.Widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, doc)
}

func (c *Reporter) tables(sections []domain.DocumentSection) []table {
	var out []table
	for _, s := range layout.NonEmpty(sections) {
		t := table{
			Title:  s.Title,
			Widths: make([]int, len(s.Columns)),
			Right:  make([]bool, len(s.Columns)),
			Header: make([]string, len(s.Columns)),
		}
		for i, col := range s.Columns {
			t.Header[i] = c.fit(col.Title)
			t.Right[i] = col.Kind != domain.CellText
		}
		for _, row := range s.Rows {
			cells := make([]string, len(s.Columns))
			for i := range s.Columns {
				if i < len(row) {
					cells[i] = c.fit(format.Cell(row[i]))
					// metric tables carry typed values in a text column
					if row[i].Kind != domain.CellText {
						t.Right[i] = true
					}
				}
			}
			t.Rows = append(t.Rows, cells)
		}
		for i := range t.Widths {
			t.Widths[i] = utf8.RuneCountInString(t.Header[i])
			for _, row := range t.Rows {
				t.Widths[i] = max(t.Widths[i], utf8.RuneCountInString(row[i]))
			}
		}
		out = append(out, t)
	}
	return out
}

func (c *Reporter) fit(s string) string {
	if c.config.MaxColumnWidth <= 0 || utf8.RuneCountInString(s) <= c.config.MaxColumnWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:c.config.MaxColumnWidth-1]) + "…"
}
