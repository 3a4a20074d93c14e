package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/hangar"
)

// NewHangarCommand creates the hangar command with subcommands
func NewHangarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hangar",
		Short: "Manage the owned-upgrade inventory",
		Long: `Import and inspect the owned upgrade certificates (CCUs) used by the
hangar pricing strategy. Import replaces the stored inventory.

Examples:
  ccu-planner hangar import my-hangar.json
  ccu-planner hangar list`,
	}

	cmd.AddCommand(newHangarImportCommand())
	cmd.AddCommand(newHangarListCommand())

	return cmd
}

// hangarImportRecord is the import file wire shape
type hangarImportRecord struct {
	Name     string `json:"name"`
	Value    int64  `json:"value"`
	Quantity int    `json:"quantity"`
}

func newHangarImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import the hangar inventory from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read hangar export: %w", err)
			}
			var records []hangarImportRecord
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("failed to parse hangar export: %w", err)
			}

			items := make([]*hangar.Item, 0, len(records))
			skipped := 0
			for _, rec := range records {
				quantity := rec.Quantity
				if quantity == 0 {
					quantity = 1
				}
				item := hangar.NewItem(rec.Name, rec.Value, quantity)
				if item.FromShipName == "" {
					// Not an upgrade item; the hangar export also lists ships
					// and other pledges.
					skipped++
					continue
				}
				items = append(items, item)
			}

			if err := s.hangarRepo.ReplaceAll(ctx, items); err != nil {
				return err
			}
			fmt.Printf("Imported %d upgrade items (%d non-upgrade entries skipped)\n",
				len(items), skipped)
			return nil
		},
	}
}

func newHangarListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored hangar inventory with consumption",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			items, err := s.hangarRepo.ListAll(ctx)
			if err != nil {
				return err
			}

			pctx, err := s.buildContext(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FROM\tTO\tVALUE\tQUANTITY\tUSED")
			for _, item := range items {
				used := 0
				if from := findByName(pctx, item.FromShipName); from != nil {
					if to := findByName(pctx, item.ToShipName); to != nil {
						used = s.tracker.ConsumedCount(from.ID, to.ID)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					item.FromShipName, item.ToShipName, formatCents(item.Value), item.Quantity, used)
			}
			return w.Flush()
		},
	}
}
