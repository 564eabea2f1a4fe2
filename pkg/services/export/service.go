// Package export turns report payloads into downloadable files
package export

import (
	"context"
	"fmt"
	"time"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/daterange"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/reports"
	"github.com/rs/zerolog"
)

type Request struct {
	ReportID   domain.ReportID
	RangeToken string
	Format     string
	// Payload is a previously generated payload. When nil the report is generated.
	Payload domain.Payload
	Filters domain.Filters
}

type Service interface {
	Export(ctx context.Context, req Request) (*domain.NamedBuffer, error)
}

type Dependencies struct {
	Reports   reports.Service
	Registry  registry.Registry
	Resolver  daterange.Resolver
	Renderers []Renderer
	Now       func() time.Time
}

type service struct {
	reports   reports.Service
	registry  registry.Registry
	resolver  daterange.Resolver
	renderers map[domain.ExportFormat]Renderer
	now       func() time.Time
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Reports == nil {
		return nil, fmt.Errorf("reports service is nil")
	}
	if len(deps.Renderers) == 0 {
		return nil, fmt.Errorf("no renderers configured")
	}
	if deps.Registry == nil {
		deps.Registry = registry.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Resolver == nil {
		deps.Resolver = daterange.NewResolver(deps.Now)
	}

	renderers := make(map[domain.ExportFormat]Renderer, len(deps.Renderers))
	for _, r := range deps.Renderers {
		if _, exists := renderers[r.Format()]; exists {
			return nil, fmt.Errorf("duplicate renderer for format %q", r.Format())
		}
		renderers[r.Format()] = r
	}

	return &service{
		reports:   deps.Reports,
		registry:  deps.Registry,
		resolver:  deps.Resolver,
		renderers: renderers,
		now:       deps.Now,
	}, nil
}

func (s *service) Export(ctx context.Context, req Request) (*domain.NamedBuffer, error) {
	logger := zerolog.Ctx(ctx)

	def, err := s.registry.Get(req.ReportID)
	if err != nil {
		return nil, err
	}

	format, ok := domain.ParseExportFormat(req.Format)
	if !ok {
		return nil, ierr.NewErrorf("unsupported export format: %q", req.Format).
			WithHint("use one of: pdf, excel, csv").
			Mark(ierr.ErrValidation)
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, ierr.NewErrorf("export format %q is not available", format).
			Mark(ierr.ErrValidation)
	}

	window := s.resolver.Resolve(req.RangeToken)

	payload := req.Payload
	if payload == nil {
		payload, err = s.reports.Generate(ctx, reports.Request{
			ReportID: req.ReportID,
			Range:    window,
			Filters:  req.Filters,
		})
		if err != nil {
			return nil, err
		}
	} else if payload.ReportID() != req.ReportID {
		return nil, ierr.NewErrorf("payload is for %q, not %q", payload.ReportID(), req.ReportID).
			Mark(ierr.ErrValidation)
	}

	generatedAt := s.now()
	data, err := renderer.Render(ctx, payload, domain.ReportHeader{
		Definition:  def,
		Range:       window,
		GeneratedAt: generatedAt,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("report", req.ReportID.String()).
			Str("format", string(format)).
			Msg("report rendering failed")
		return nil, ierr.WithError(err).
			WithHint("report could not be exported").
			Mark(ierr.ErrRender)
	}

	name := FileName(req.ReportID, window.Token, generatedAt, format)
	logger.Info().
		Str("file", name).
		Int("bytes", len(data)).
		Bool("prefetched", req.Payload != nil).
		Msg("report exported")

	return &domain.NamedBuffer{
		Name:        name,
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// FileName is {reportId}-{token}-{YYYY-MM-DD}.{ext}
func FileName(id domain.ReportID, token string, at time.Time, format domain.ExportFormat) string {
	return fmt.Sprintf("%s-%s-%s.%s", id, token, at.Format("2006-01-02"), format.Extension())
}
