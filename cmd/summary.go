package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// summaryCmd shows the registry and every derived metric.
var summaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Show material quantities and the derived brick/landfill metrics",
	Long:    "Show current material quantities, bricks producible, landfill volume diverted, area reduced and percent landfill reduced.",
	Aliases: []string{"s", "show"},
	RunE:    runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	entries := eng.OrderedEntries()

	// Widest label and largest quantity drive the table layout.
	labelWidth := 0
	maxQty := 0.0
	for _, e := range entries {
		if len(e.Label) > labelWidth {
			labelWidth = len(e.Label)
		}
		if e.Quantity > maxQty {
			maxQty = e.Quantity
		}
	}

	color.Green("Available waste material:\n")
	for _, e := range entries {
		fmt.Printf("  %-*s %8s kg  %s\n", labelWidth, e.Label, FormatQty(e.Quantity), Bar(e.Quantity, maxQty, 30))
	}
	fmt.Println()

	s := eng.Settings()
	fmt.Printf("Total available waste:   %s kg\n", FormatQty(eng.TotalAvailableWaste()))
	fmt.Printf("Bricks producible:       %d (at %s kg per brick)\n", eng.BricksProducible(), FormatQty(s.BrickMass))
	fmt.Printf("Volume diverted:         %s m³\n", FormatQty(eng.VolumeDiverted()))
	fmt.Printf("Landfill area reduced:   %s m²\n", FormatQty(eng.AreaReduced()))

	pct := eng.PercentLandfillReduced()
	line := fmt.Sprintf("Landfill reduction:      %.4f%% of %s m²", pct, FormatQty(s.LandfillArea))
	if pct > 0 {
		color.HiGreen(line)
	} else {
		fmt.Println(line)
	}

	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(summaryCmd)
}
