package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
)

// Reporter prints the report catalog in a short list form
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(defs []domain.ReportDefinition) error {
	tmpl := `{{range .}}
- {{.ID}} [{{.Category}}]: {{.Title}}
  {{.Description}}
{{end}}`
	t, err := template.New("catalog").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, defs)
}
