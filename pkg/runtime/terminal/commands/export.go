package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/export"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	flags   reportFlags
	format  string
	outDir  string
	timeout time.Duration
	open    Opener
}

func NewExportCmd(open Opener) *cobra.Command {
	ec := &ExportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report as pdf, excel or csv",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	ec.flags.register(cmd)
	cmd.Flags().StringVar(&ec.format, "format", "pdf", "Output format: pdf, excel or csv")
	cmd.Flags().StringVarP(&ec.outDir, "out", "o", ".", "Directory to write the file to")
	cmd.Flags().DurationVar(&ec.timeout, "timeout", 60*time.Second, "Abort after this long")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	filters, err := ec.flags.validate()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ec.timeout)
	defer cancel()

	a, err := ec.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := a.Exporter.Export(ctx, export.Request{
		ReportID:   domain.ReportID(ec.flags.report),
		RangeToken: ec.flags.dateRange,
		Format:     ec.format,
		Filters:    filters,
	})
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", ec.flags.report, err)
	}

	if err := os.MkdirAll(ec.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(ec.outDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", path, humanize.Bytes(uint64(len(file.Data))))
	return err
}
