package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
)

// settingUnits maps each conversion parameter to its display unit.
var settingUnits = map[string]string{
	engine.SettingBrickMass:     "kg per brick",
	engine.SettingBrickVolume:   "m³ per brick",
	engine.SettingLandfillArea:  "m²",
	engine.SettingLandfillDepth: "m",
}

// settingsCmd lists the conversion parameters, or updates one.
var settingsCmd = &cobra.Command{
	Use:   "settings [name value]",
	Short: "Show or change the brick and landfill conversion parameters",
	Long: `With no arguments, list the four conversion parameters. With a name and
a value, update that parameter. Values must be greater than zero;
anything else is rejected and the prior value is kept.`,
	Args:    cobra.MaximumNArgs(2),
	RunE:    runSettings,
	Aliases: []string{"cfg"},
}

func runSettings(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		printSettings(eng)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("expected a setting name and a value, got %d argument(s)", len(args))
	}

	name, err := resolveSettingName(args[0])
	if err != nil {
		return err
	}
	value, err := ParseQuantity(args[1])
	if err != nil {
		return err
	}

	prior, _ := eng.Setting(name)
	if err := eng.UpdateSetting(name, value); err != nil {
		if errors.Is(err, engine.ErrInvalidValue) {
			color.HiRed("Rejected: %s must be greater than zero; keeping %s", name, FormatQty(prior))
			return err
		}
		if errors.Is(err, engine.ErrPersistence) {
			color.HiRed("warning: %v", err)
		} else {
			return err
		}
	}

	fmt.Printf("Set %s to %s %s (was %s)\n", name, FormatQty(value), settingUnits[name], FormatQty(prior))
	fmt.Printf("Bricks producible is now %d\n", eng.BricksProducible())

	return nil
}

func printSettings(eng *engine.Engine) {
	color.Green("Conversion parameters:\n")
	for _, name := range engine.SettingNames {
		v, _ := eng.Setting(name)
		fmt.Printf("  %-14s %10s %s\n", name, FormatQty(v), settingUnits[name])
	}
}

// resolveSettingName accepts the canonical camelCase names and a few
// forgiving spellings (case-insensitive, snake_case).
func resolveSettingName(input string) (string, error) {
	needle := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), "_", ""))
	for _, name := range engine.SettingNames {
		if strings.ToLower(name) == needle {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown setting %q; one of: %s", input, strings.Join(engine.SettingNames, ", "))
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(settingsCmd)
}
