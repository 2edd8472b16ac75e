package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
	"gopkg.in/yaml.v3"
)

// importCmd loads external quantity data from a JSON or YAML file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import material quantities from a JSON or YAML file",
	Long: `Import quantities (in kilograms) from a JSON or YAML object of
key: number entries. Keys are matched against the known materials
loosely — "plastic_shreds", "Plastic shreds" and "plastic" all update
the same entry — so externally produced files need no fixed schema.
Keys that match nothing are ignored; values that are not numbers are
skipped.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runImport,
	Aliases: []string{"load"},
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	source, err := readImportFile(args[0])
	if err != nil {
		return err
	}
	if len(source) == 0 {
		return fmt.Errorf("%s contains no entries", args[0])
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if dryRun {
		// Probe the matches on a throwaway engine so nothing sticks.
		lines, applied, unmatched, malformed := previewImport(source)
		color.HiYellow("Dry run mode enabled. Nothing will be changed.")
		for _, line := range lines {
			fmt.Println(line)
		}
		fmt.Printf("\nWould import %d value(s); %d key(s) unmatched, %d value(s) not numbers\n",
			applied, unmatched, malformed)
		return nil
	}

	report, err := eng.ImportQuantities(source)
	if err != nil {
		color.HiRed("warning: %v", err)
	}

	for _, a := range report.Applied {
		fmt.Printf("  %s -> %s = %s kg\n", a.Key, a.Label, FormatQty(a.Quantity))
	}
	for _, k := range report.Unmatched {
		color.HiYellow("  %s: no matching material, ignored", k)
	}
	for _, k := range report.Malformed {
		color.HiYellow("  %s: value is not a number, skipped", k)
	}

	if len(report.Applied) == 0 {
		color.HiRed("\nNothing imported from %s", args[0])
		return nil
	}

	color.Green("\nImported %d value(s) from %s", len(report.Applied), args[0])
	fmt.Printf("Total available waste is now %s kg (%d bricks)\n",
		FormatQty(eng.TotalAvailableWaste()), eng.BricksProducible())

	return nil
}

// previewImport runs the import against a fresh store-less engine and
// renders the same report lines runImport would print.
func previewImport(source map[string]any) (lines []string, applied, unmatched, malformed int) {
	probe := engine.New(nil)
	report, _ := probe.ImportQuantities(source)
	for _, a := range report.Applied {
		lines = append(lines, fmt.Sprintf("  %s -> %s = %s kg", a.Key, a.Label, FormatQty(a.Quantity)))
	}
	for _, k := range report.Unmatched {
		lines = append(lines, fmt.Sprintf("  %s: no matching material, ignored", k))
	}
	for _, k := range report.Malformed {
		lines = append(lines, fmt.Sprintf("  %s: value is not a number, skipped", k))
	}
	return lines, len(report.Applied), len(report.Unmatched), len(report.Malformed)
}

// readImportFile decodes path into a flat key -> value map. The format
// is chosen by extension; anything that is not .yaml/.yml is treated
// as JSON.
func readImportFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var source map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &source); err != nil {
			return nil, fmt.Errorf("yaml parsing error in %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &source); err != nil {
			return nil, fmt.Errorf("json parsing error in %s: %w", path, err)
		}
	}

	return source, nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolP("dry-run", "d", false, "show what would be imported without applying it")
}
