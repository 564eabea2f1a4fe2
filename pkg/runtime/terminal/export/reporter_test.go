package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, payload domain.Payload) string {
	t.Helper()
	doc, err := layout.Build(payload, testutil.Header(domain.ReportSalesSummary, "Resumen de Ventas"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(doc))
	return buf.String()
}

func TestReporter_Handle(t *testing.T) {
	out := render(t, testutil.SalesPayload())

	assert.Contains(t, out, "Resumen de Ventas")
	assert.Contains(t, out, "=== Resumen ===")
	assert.Contains(t, out, "=== Top Productos ===")
	assert.Contains(t, out, "=== Pedidos por Estado ===")

	var totalLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Total de Ingresos") {
			totalLine = line
			break
		}
	}
	require.NotEmpty(t, totalLine)
	assert.True(t, strings.HasPrefix(totalLine, "| Total de Ingresos"), totalLine)
	assert.True(t, strings.HasSuffix(totalLine, "$150.00 |"), "amounts are right aligned: %q", totalLine)
}

func TestReporter_TablesAreAligned(t *testing.T) {
	out := render(t, testutil.SalesPayload())

	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "|") {
			widths = append(widths, len([]rune(line)))
			continue
		}
		if len(widths) > 0 {
			for _, w := range widths {
				assert.Equal(t, widths[0], w)
			}
			widths = nil
		}
	}
}

func TestReporter_EmptyWindow(t *testing.T) {
	out := render(t, testutil.EmptySalesPayload())

	assert.Contains(t, out, "=== Resumen ===")
	assert.NotContains(t, out, "=== Top Productos ===")
	assert.Contains(t, out, "$0.00")
}

func TestReporter_Fit(t *testing.T) {
	r := &Reporter{config: TableConfig{MaxColumnWidth: 5}}

	assert.Equal(t, "abc", r.fit("abc"))
	assert.Equal(t, "Audí…", r.fit("Audífonos"))
}
