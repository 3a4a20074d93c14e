package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ccu-planner",
		Short: "CCU Planner - plan multi-step ship upgrade purchases",
		Long: `CCU Planner builds a diagram of ship-to-ship upgrade steps, prices each
step under the cheapest applicable purchase mechanism, and finds the cheapest
sequence from a ship you own to the ship you want.

Examples:
  ccu-planner catalog list
  ccu-planner hangar import my-hangar.json
  ccu-planner edge add --from "Aurora MR" --to "Avenger Titan"
  ccu-planner plan "Constellation Andromeda"
  ccu-planner complete mark "Constellation Andromeda" --path 1
  ccu-planner complete list`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewHangarCommand())
	rootCmd.AddCommand(NewOffersCommand())
	rootCmd.AddCommand(NewEdgeCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCompleteCommand())

	return rootCmd
}
