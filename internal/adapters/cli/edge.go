package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/pricing"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// NewEdgeCommand creates the edge command with subcommands
func NewEdgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Add and re-price upgrade edges on the diagram",
		Long: `Mutate the saved upgrade diagram. Adding an edge places nodes for both
ships if the diagram does not have them yet, prices the edge under the
auto-selected strategy, and saves the diagram.

Examples:
  ccu-planner edge add --from "Aurora MR" --to "Avenger Titan"
  ccu-planner edge update --from "Aurora MR" --to "Avenger Titan" --type manual_wb --price 3500`,
	}

	cmd.AddCommand(newEdgeAddCommand())
	cmd.AddCommand(newEdgeUpdateCommand())

	return cmd
}

func newEdgeAddCommand() *cobra.Command {
	var fromRef, toRef string
	var preferred string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a priced edge between two ships",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			pctx, err := s.buildContext(ctx)
			if err != nil {
				return err
			}
			if preferred != "" {
				st := pricing.SourceType(preferred)
				if !st.IsValid() {
					return fmt.Errorf("unknown source type %q", preferred)
				}
				pctx.Preferred = &st
			}

			from, err := s.findShip(ctx, fromRef)
			if err != nil {
				return err
			}
			to, err := s.findShip(ctx, toRef)
			if err != nil {
				return err
			}

			d, err := s.diagramRepo.Load(ctx)
			if err != nil {
				return err
			}

			sourceNode := nodeForShip(d, from.ID)
			if sourceNode == nil {
				sourceNode = upgrade.NewNode(from, 0, 0)
				d.AddNode(sourceNode)
			}
			targetNode := nodeForShip(d, to.ID)
			if targetNode == nil {
				targetNode = upgrade.NewNode(to, sourceNode.X+280, sourceNode.Y)
				d.AddNode(targetNode)
			}

			edge, err := s.pricing.CreateEdge(sourceNode, targetNode, pctx)
			if err != nil {
				return fmt.Errorf("cannot create edge %s -> %s: %w", from.Name, to.Name, err)
			}
			if err := d.AddEdge(edge); err != nil {
				return fmt.Errorf("cannot add edge %s -> %s: %w", from.Name, to.Name, err)
			}

			if err := s.diagramRepo.ReplaceAll(ctx, d); err != nil {
				return err
			}

			price := edge.Pricing.BasePriceDelta
			if edge.Pricing.CustomPrice != nil {
				price = *edge.Pricing.CustomPrice
			}
			fmt.Printf("Added %s -> %s [%s] %s %s\n",
				from.Name, to.Name, edge.Pricing.SourceType, formatCents(price), edge.Pricing.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromRef, "from", "", "Source ship name or id (required)")
	cmd.Flags().StringVar(&toRef, "to", "", "Target ship name or id (required)")
	cmd.Flags().StringVar(&preferred, "prefer", "", "Preferred source type for auto-selection")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newEdgeUpdateCommand() *cobra.Command {
	var fromRef, toRef, newType string
	var price int64

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-price an existing edge under an explicit strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			pctx, err := s.buildContext(ctx)
			if err != nil {
				return err
			}

			from, err := s.findShip(ctx, fromRef)
			if err != nil {
				return err
			}
			to, err := s.findShip(ctx, toRef)
			if err != nil {
				return err
			}

			st := pricing.SourceType(newType)
			if !st.IsValid() {
				return fmt.Errorf("unknown source type %q", newType)
			}

			d, err := s.diagramRepo.Load(ctx)
			if err != nil {
				return err
			}
			edge := d.EdgeBetween(from.ID, to.ID)
			if edge == nil {
				return fmt.Errorf("no edge %s -> %s on the diagram", from.Name, to.Name)
			}

			var customPrice *int64
			if cmd.Flags().Changed("price") {
				customPrice = &price
			}
			s.pricing.UpdateEdge(edge, st, customPrice, pctx)

			if err := s.diagramRepo.ReplaceAll(ctx, d); err != nil {
				return err
			}

			fmt.Printf("Updated %s -> %s to [%s]\n", from.Name, to.Name, st)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromRef, "from", "", "Source ship name or id (required)")
	cmd.Flags().StringVar(&toRef, "to", "", "Target ship name or id (required)")
	cmd.Flags().StringVar(&newType, "type", "", "New source type (required)")
	cmd.Flags().Int64Var(&price, "price", 0, "Explicit price override in cents")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// nodeForShip returns any placement of the ship on the diagram, or nil
func nodeForShip(d *upgrade.Diagram, shipID string) *upgrade.Node {
	for _, n := range d.Nodes() {
		if n.ShipID() == shipID {
			return n
		}
	}
	return nil
}
