package commands

import (
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/spf13/cobra"
)

func NewListCmd(reg registry.Registry, printer CatalogPrinter) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printer.Handle(reg.List())
		},
	}
}
