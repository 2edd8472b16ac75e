package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
)

// setCmd updates material quantities from the command line.
var setCmd = &cobra.Command{
	Use:     "set <material> <kg> [<material> <kg>...]",
	Short:   "Set the quantity on hand for one or more materials",
	Long:    `Set the quantity on hand (in kilograms) for one or more materials. Material names may be configured aliases or unambiguous fragments of a label. Negative amounts are stored as zero.`,
	RunE:    runSet,
	Aliases: []string{"u", "update"},
}

func runSet(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if len(args)%2 != 0 || len(args) < 2 {
		return fmt.Errorf("arguments must be material name and kilogram amount pairs")
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if dryRun {
		if _, err := color.New(color.FgHiYellow).Println("Dry run mode enabled. Nothing will be changed."); err != nil {
			return err
		}
	}

	var errs error
	for i := 0; i < len(args); i += 2 {
		label, rerr := ResolveLabel(eng, args[i])
		if rerr != nil {
			errs = errors.Join(errs, rerr)
			continue
		}
		qty, perr := ParseQuantity(args[i+1])
		if perr != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", label, perr))
			continue
		}

		if qty < 0 {
			color.HiYellow("%s: %s kg is negative; storing 0", label, FormatQty(qty))
		}
		if dryRun {
			fmt.Printf("Would set %s to %s kg\n", label, FormatQty(max(0, qty)))
			continue
		}

		if uerr := eng.UpdateValue(label, qty); uerr != nil {
			if errors.Is(uerr, engine.ErrPersistence) {
				color.HiRed("warning: %v", uerr)
			} else {
				errs = errors.Join(errs, uerr)
				continue
			}
		}
		stored, _ := eng.Quantity(label)
		fmt.Printf("Set %s to %s kg\n", label, FormatQty(stored))
	}
	if errs != nil {
		return errs
	}

	if !dryRun {
		fmt.Printf("\nTotal available waste is now %s kg (%d bricks)\n",
			FormatQty(eng.TotalAvailableWaste()), eng.BricksProducible())
	}

	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolP("dry-run", "d", false, "show what would change without changing it")
}
