package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the ship catalog",
		Long: `Inspect the configured ship catalog source.

Examples:
  ccu-planner catalog list`,
	}

	cmd.AddCommand(newCatalogListCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every ship in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			if s.catalog == nil {
				return fmt.Errorf("no ship catalog configured (set catalog.path or catalog.url)")
			}
			ships, err := s.catalog.All(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMANUFACTURER\tMSRP\tPROMO")
			for _, sh := range ships {
				promo := "-"
				if sku := sh.BestDiscountedSku(); sku != nil {
					promo = formatCents(sku.Price)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					sh.ID, sh.Name, sh.Manufacturer, formatCents(sh.Msrp), promo)
			}
			return w.Flush()
		},
	}
}

// formatCents renders a minor-unit amount as a dollar string
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
