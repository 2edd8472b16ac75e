package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
)

// resetCmd restores the canonical quantities and settings.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore all quantities and settings to their defaults",
	Long:  "Restore every material quantity and all four conversion parameters to their compiled-in defaults.",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}

	if !yes {
		if !isInteractiveAllowed(false) {
			return fmt.Errorf("refusing to reset without confirmation; pass --yes in non-interactive use")
		}
		prompt := promptui.Prompt{
			Label:     "Reset all quantities and settings to defaults",
			IsConfirm: true,
			Stdout:    NoBellStdout,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
				fmt.Println("Reset cancelled.")
				return nil
			}
			return err
		}
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.ResetToDefaults(); err != nil {
		if !errors.Is(err, engine.ErrPersistence) {
			return err
		}
		color.HiRed("warning: %v", err)
	}

	color.Green("Reset to defaults.")
	fmt.Printf("Total available waste: %s kg, %d bricks producible\n",
		FormatQty(eng.TotalAvailableWaste()), eng.BricksProducible())

	return nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}
