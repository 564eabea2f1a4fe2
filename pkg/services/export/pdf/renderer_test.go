package pdf

import (
	"bytes"
	"context"
	"testing"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(Settings{Compress: false})
	header := testutil.Header(domain.ReportSalesSummary, "Resumen de Ventas")

	tests := []struct {
		name     string
		payload  domain.Payload
		contains []string
		missing  []string
	}{
		{
			name:     "sales summary",
			payload:  testutil.SalesPayload(),
			contains: []string{"Total de Ingresos", "$150.00", "Top Productos", "Pedidos por Estado", "Entregado"},
		},
		{
			name:     "empty window",
			payload:  testutil.EmptySalesPayload(),
			contains: []string{"Total de Ingresos", "$0.00"},
			missing:  []string{"Top Productos", "Pedidos por Estado"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.Render(context.Background(), tt.payload, header)
			require.NoError(t, err)

			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
			for _, s := range tt.contains {
				assert.True(t, bytes.Contains(data, []byte(s)), "expected %q in document", s)
			}
			for _, s := range tt.missing {
				assert.False(t, bytes.Contains(data, []byte(s)), "unexpected %q in document", s)
			}
		})
	}
}

func TestRenderer_Paginates(t *testing.T) {
	payload := testutil.SalesPayload()
	for i := 0; i < 60; i++ {
		payload.SalesTrends = append(payload.SalesTrends, payload.SalesTrends[0])
	}

	data, err := NewRenderer(Settings{}).Render(context.Background(), payload, testutil.Header(domain.ReportSalesSummary, "Resumen de Ventas"))
	require.NoError(t, err)

	pages := bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
	assert.GreaterOrEqual(t, pages, 2)
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer(Settings{})

	_, err := r.Render(context.Background(), testutil.SalesPayload(), testutil.Header(domain.ReportFinancial, "Reporte Financiero"))
	require.Error(t, err)
	assert.True(t, ierr.IsRender(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, testutil.SalesPayload(), testutil.Header(domain.ReportSalesSummary, "Resumen de Ventas"))
	assert.ErrorIs(t, err, context.Canceled)
}
