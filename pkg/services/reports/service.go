package reports

import (
	"context"
	"fmt"

	ierr "github.com/jesusrosales17/ecommerce-sub000/pkg/errors"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/pricing"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/store/sales"
	"github.com/rs/zerolog"
)

type Request struct {
	ReportID domain.ReportID
	Range    domain.DateRange
	Filters  domain.Filters
}

// Service produces report payloads. A payload is either complete or an error is returned.
type Service interface {
	Generate(ctx context.Context, req Request) (domain.Payload, error)
}

// Generator computes the payload of one report for a query window
type Generator func(ctx context.Context, q sales.Query) (domain.Payload, error)

type service struct {
	generators map[domain.ReportID]Generator
}

func NewService(store sales.Store, prices pricing.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("sales store is nil")
	}
	if prices == nil {
		prices = pricing.NewStore()
	}

	g := &generators{store: store, pricing: prices}
	return newService(map[domain.ReportID]Generator{
		domain.ReportSalesSummary:       g.salesSummary,
		domain.ReportCustomerAnalysis:   g.customerAnalysis,
		domain.ReportProductPerformance: g.productPerformance,
		domain.ReportFinancial:          g.financial,
		domain.ReportOrdersAnalysis:     g.ordersAnalysis,
	})
}

func newService(generators map[domain.ReportID]Generator) (Service, error) {
	for _, id := range domain.ReportIDs {
		if generators[id] == nil {
			return nil, fmt.Errorf("no generator registered for report %q", id)
		}
	}
	return &service{generators: generators}, nil
}

func (s *service) Generate(ctx context.Context, req Request) (domain.Payload, error) {
	logger := zerolog.Ctx(ctx)

	generate, ok := s.generators[req.ReportID]
	if !ok {
		return nil, ierr.NewErrorf("unknown report id: %q", req.ReportID).
			WithHintf("use one of: %v", domain.ReportIDs).
			Mark(ierr.ErrValidation)
	}
	if req.Range.Start.After(req.Range.End) {
		return nil, ierr.NewError("date range starts after it ends").
			Mark(ierr.ErrValidation)
	}

	payload, err := generate(ctx, sales.Query{
		Start:   req.Range.Start,
		End:     req.Range.End,
		Filters: req.Filters,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("report", req.ReportID.String()).
			Time("start", req.Range.Start).
			Time("end", req.Range.End).
			Msg("report generation failed")
		return nil, ierr.WithError(err).
			WithHint("report generation failed, retry later").
			Mark(ierr.ErrAggregation)
	}
	return payload, nil
}
