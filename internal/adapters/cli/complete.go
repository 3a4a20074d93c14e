package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Citizens-Hub/ccu-planner/internal/application/planner"
	"github.com/Citizens-Hub/ccu-planner/internal/application/tracker"
	"github.com/Citizens-Hub/ccu-planner/internal/domain/upgrade"
)

// NewCompleteCommand creates the complete command with subcommands
func NewCompleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Track upgrade paths you have finished buying",
		Long: `Completed paths consume matching hangar items and are excluded from the
new-investment cost of future plans.

Examples:
  ccu-planner complete mark "Constellation Andromeda" --path 1
  ccu-planner complete list
  ccu-planner complete unmark 3f2a9c1e-...
  ccu-planner complete clear`,
	}

	cmd.AddCommand(newCompleteMarkCommand())
	cmd.AddCommand(newCompleteUnmarkCommand())
	cmd.AddCommand(newCompleteListCommand())
	cmd.AddCommand(newCompleteClearCommand())

	return cmd
}

func newCompleteMarkCommand() *cobra.Command {
	var pathIndex int

	cmd := &cobra.Command{
		Use:   "mark <target-ship>",
		Short: "Mark a ranked path to the target ship as completed",
		Args:  cobra.ExactArgs(1),
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

			rate := s.cfg.Planner.ExchangeRate
			concierge := s.cfg.Planner.Concierge

			pathIDs := s.finder.FindAllPaths(d, target.ID, pctx, rate, concierge, s.cfg.Planner.Prune)
			paths := planner.BuildCompletePaths(pathIDs, d, map[upgrade.NodeID]int64{}, pctx)
			planner.SortByTotalCost(paths, rate, concierge)

			if pathIndex < 1 || pathIndex > len(paths) {
				return fmt.Errorf("path index %d out of range: %d paths reach %s", pathIndex, len(paths), target.Name)
			}
			chosen := paths[pathIndex-1]
			if done, id := s.tracker.IsPathCompleted(chosen); done {
				return fmt.Errorf("path already completed as %s", id)
			}

			cp := s.tracker.MarkCompleted(ctx, chosen, target)
			fmt.Printf("Marked path %s completed (%s)\n", cp.ID, pathLabel(chosen))
			return nil
		},
	}

	cmd.Flags().IntVar(&pathIndex, "path", 1, "1-based index of the ranked path to mark")

	return cmd
}

func newCompleteUnmarkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unmark <path-id>",
		Short: "Remove one completed path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			s.tracker.Unmark(ctx, args[0])
			fmt.Printf("Unmarked %s\n", args[0])
			return nil
		},
	}
}

func newCompleteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List completed paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			completed := s.tracker.Completed()
			if len(completed) == 0 {
				fmt.Println("No completed paths")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTARGET\tPATH")
			for _, cp := range completed {
				fmt.Fprintf(w, "%s\t%s\t%s\n", cp.ID, shipLabel(cp), pathLabel(cp.Path))
			}
			return w.Flush()
		},
	}
}

func newCompleteClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed path",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer s.close()

			s.tracker.Clear(ctx)
			fmt.Println("Cleared completed paths")
			return nil
		},
	}
}

func shipLabel(cp *tracker.CompletedPath) string {
	if cp.Ship != nil {
		return cp.Ship.Name
	}
	return "-"
}

func pathLabel(p *planner.CompletePath) string {
	if p == nil {
		return "-"
	}
	names := make([]string, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.Ship != nil {
			names = append(names, n.Ship.Name)
		} else {
			names = append(names, upgrade.ShipIDOf(n.ID))
		}
	}
	return strings.Join(names, " > ")
}
