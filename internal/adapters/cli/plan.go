package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var rankBy string
	var includeStart bool
	var limit int

	cmd := &cobra.Command{
		Use:   "plan <target-ship>",
		Short: "Enumerate and rank upgrade paths to a target ship",
		Long: `Search the saved diagram for every path from a root placement to the
target ship, price each path under the current hangar, history and offer
data, and print them cheapest first.

Ranking modes:
  total           total cost of the whole path (default)
  new-investment  cost of only the edges not yet completed`,
		Args: cobra.ExactArgs(1),
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

			target, err := s.findShip(ctx, args[0])
			if err != nil {
				return err
			}

			d, err := s.diagramRepo.Load(ctx)
			if err != nil {
				return err
			}
			if len(d.Nodes()) == 0 {
				return fmt.Errorf("the diagram is empty; add edges first")
			}

			rate := s.cfg.Planner.ExchangeRate
			concierge := s.cfg.Planner.Concierge

			pathIDs := s.finder.FindAllPaths(d, target.ID, pctx, rate, concierge, s.cfg.Planner.Prune)
			if len(pathIDs) == 0 {
				fmt.Printf("No upgrade path reaches %s\n", target.Name)
				return nil
			}

			startPrices := map[upgrade.NodeID]int64{}
			if includeStart {
				for _, root := range d.Roots() {
					if root.Ship != nil {
						startPrices[root.ID] = root.Ship.Msrp
					}
				}
			}

			paths := planner.BuildCompletePaths(pathIDs, d, startPrices, pctx)

			switch rankBy {
			case "new-investment":
				planner.SortByNewInvestment(paths, s.tracker, rate, concierge)
			case "total", "":
				planner.SortByTotalCost(paths, rate, concierge)
			default:
				return fmt.Errorf("unknown ranking mode %q", rankBy)
			}

			if limit > 0 && len(paths) > limit {
				paths = paths[:limit]
			}
			printPaths(paths, s.tracker, rate, concierge)
			return nil
		},
	}

	cmd.Flags().StringVar(&rankBy, "rank", "total", "Ranking mode: total or new-investment")
	cmd.Flags().BoolVar(&includeStart, "include-start", false, "Add each root ship's list price to its paths")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print at most this many paths (0 = all)")

	return cmd
}

func printPaths(paths []*planner.CompletePath, index planner.CompletedIndex, rate, concierge float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPATH\tUSD\tCNY\tTOTAL\tNEW INVESTMENT")

	for i, p := range paths {
		names := make([]string, 0, len(p.Nodes))
		for _, n := range p.Nodes {
			name := string(n.ID)
			if n.Ship != nil {
				name = n.Ship.Name
			}
			names = append(names, name)
		}

		cny := "-"
		if p.HasCnyPricing {
			cny = formatCents(p.TotalCny)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.2f\n",
			i+1,
			strings.Join(names, " > "),
			formatCents(p.TotalUsd),
			cny,
			p.TotalCost(rate, concierge)/100,
			planner.NewInvestmentCost(p, index, rate, concierge)/100,
		)
	}
	w.Flush()
}
