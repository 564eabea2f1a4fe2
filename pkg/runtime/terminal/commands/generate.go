package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export/layout"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/reports"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	flags   reportFlags
	asJSON  bool
	timeout time.Duration
	open    Opener
	printer DocumentPrinter
}

func NewGenerateCmd(open Opener, printer DocumentPrinter) *cobra.Command {
	gc := &GenerateCmd{open: open, printer: printer}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute a report and print a preview",
		Args:  cobra.NoArgs,
		RunE:  gc.run,
	}

	gc.flags.register(cmd)
	cmd.Flags().BoolVar(&gc.asJSON, "json", false, "Print the raw payload as JSON")
	cmd.Flags().DurationVar(&gc.timeout, "timeout", 60*time.Second, "Abort after this long")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := gc.flags.validate()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), gc.timeout)
	defer cancel()

	a, err := gc.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	id := domain.ReportID(gc.flags.report)
	def, err := a.Registry.Get(id)
	if err != nil {
		return err
	}

	window := a.Resolver.Resolve(gc.flags.dateRange)
	payload, err := a.Reports.Generate(ctx, reports.Request{
		ReportID: id,
		Range:    window,
		Filters:  filters,
	})
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", id, err)
	}

	if gc.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	doc, err := layout.Build(payload, domain.ReportHeader{
		Definition:  def,
		Range:       window,
		GeneratedAt: a.Now(),
	})
	if err != nil {
		return err
	}
	return gc.printer.Handle(doc)
}
