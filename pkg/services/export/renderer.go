package export

import (
	"context"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
)

// Renderer turns a payload into the bytes of one output format. Implementations
// render into a private buffer: on error no partial output is returned.
type Renderer interface {
	Format() domain.ExportFormat
	Render(ctx context.Context, payload domain.Payload, header domain.ReportHeader) ([]byte, error)
}
