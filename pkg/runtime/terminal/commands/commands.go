package commands

import (
	"context"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/adapters"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/api"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/runtime/app"
	"github.com/spf13/cobra"
)

// Opener builds the report services for a single command run
type Opener func(ctx context.Context) (*app.App, error)

type CatalogPrinter interface {
	Handle(defs []domain.ReportDefinition) error
}

type DocumentPrinter interface {
	Handle(doc *domain.Document) error
}

// reportFlags are shared by generate and export
type reportFlags struct {
	report     string
	dateRange  string
	statuses   []string
	categories []string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.report, "report", "", "Report id, see the list command")
	cmd.Flags().StringVar(&f.dateRange, "range", "30d", "Date range: 7d, 30d, 90d or 1y")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "Only orders in these statuses")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Only order lines in these category ids")

	_ = cmd.MarkFlagRequired("report")
}

func (f *reportFlags) validate() (domain.Filters, error) {
	filters := &api.Filters{Statuses: f.statuses, CategoryIDs: f.categories}
	req := api.GenerateReportRequest{
		ReportID:  f.report,
		DateRange: f.dateRange,
		Filters:   filters,
	}
	if err := api.Validate(req); err != nil {
		return domain.Filters{}, err
	}
	return adapters.MapAPIFiltersToDomain(filters), nil
}
