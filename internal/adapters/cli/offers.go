package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
)

// NewOffersCommand creates the offers command with subcommands
func NewOffersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Manage imported subscription upgrade offers",
		Long: `Import and inspect the subscription upgrade offers used by the
subscription pricing strategy. Import replaces the stored offers.

Examples:
  ccu-planner offers import offers.json
  ccu-planner offers list`,
	}

	cmd.AddCommand(newOffersImportCommand())
	cmd.AddCommand(newOffersListCommand())

	return cmd
}

// offerImportRecord is the import file wire shape
type offerImportRecord struct {
	FromShipID string `json:"from_ship_id"`
	ToShipID   string `json:"to_ship_id"`
	Price      int64  `json:"price"`
	Currency   string `json:"currency"`
}

// parseOfferRecords decodes an offer export, defaulting currency to USD and
// rejecting records without a ship pair
func parseOfferRecords(data []byte) ([]pricing.Offer, error) {
	var records []offerImportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse offer export: %w", err)
	}

	offers := make([]pricing.Offer, 0, len(records))
	for i, rec := range records {
		if rec.FromShipID == "" || rec.ToShipID == "" {
			return nil, fmt.Errorf("offer %d is missing a ship pair", i)
		}
		currency := pricing.Currency(rec.Currency)
		if currency == "" {
			currency = pricing.USD
		}
		offers = append(offers, pricing.Offer{
			FromShipID: rec.FromShipID,
			ToShipID:   rec.ToShipID,
			Price:      rec.Price,
			Currency:   currency,
		})
	}
	return offers, nil
}

func newOffersImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import subscription offers from a JSON export",
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
				return fmt.Errorf("failed to read offer export: %w", err)
			}
			offers, err := parseOfferRecords(data)
			if err != nil {
				return err
			}

			if err := s.offerRepo.ReplaceAll(ctx, offers); err != nil {
				return err
			}
			fmt.Printf("Imported %d subscription offers\n", len(offers))
			return nil
		},
	}
}

func newOffersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored subscription offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			offers, err := s.offerRepo.ListAll(ctx)
			if err != nil {
				return err
			}
			if len(offers) == 0 {
				fmt.Println("No subscription offers")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FROM\tTO\tPRICE\tCURRENCY")
			for _, offer := range offers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					offer.FromShipID, offer.ToShipID, formatCents(offer.Price), offer.Currency)
			}
			return w.Flush()
		},
	}
}
