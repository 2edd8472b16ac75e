package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
)

// editCmd is the prompt-driven editing loop: pick a material, type a
// quantity, repeat until done.
var editCmd = &cobra.Command{
	Use:     "edit",
	Short:   "Interactively edit material quantities",
	Long:    "Select materials from a searchable list and update their quantities one at a time.",
	RunE:    runEdit,
	Aliases: []string{"e"},
}

func runEdit(cmd *cobra.Command, args []string) error {
	simple, err := cmd.Flags().GetBool("simple-select")
	if err != nil {
		return err
	}

	if !isInteractiveAllowed(false) {
		return fmt.Errorf("edit needs an interactive terminal; use 'brik set' instead")
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	// Keep a running tally on screen as edits land.
	unsubscribe := eng.Subscribe(func() {
		fmt.Printf("  -> total %s kg, %d bricks producible\n",
			FormatQty(eng.TotalAvailableWaste()), eng.BricksProducible())
	})
	defer unsubscribe()

	for {
		entry, canceled, serr := selectMaterial(eng, simple)
		if serr != nil {
			return serr
		}
		if canceled {
			break
		}

		qty, canceled, qerr := promptQuantity(entry)
		if qerr != nil {
			return qerr
		}
		if canceled {
			continue
		}

		if uerr := eng.UpdateValue(entry.Label, qty); uerr != nil {
			if !errors.Is(uerr, engine.ErrPersistence) {
				return uerr
			}
			color.HiRed("warning: %v", uerr)
		}
	}

	color.Green("Done editing.")
	return nil
}

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// selectMaterial shows a selectable list of materials and returns the
// chosen entry. If the user cancels the prompt (Esc or Ctrl+C),
// canceled is true.
func selectMaterial(eng *engine.Engine, forceSimple bool) (engine.Entry, bool, error) {
	entries := eng.OrderedEntries()

	if forceSimple {
		return selectMaterialSimple(entries)
	}

	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = e.String()
	}

	searcher := func(input string, index int) bool {
		needle := strings.ToLower(strings.TrimSpace(input))
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(entries[index].Label), needle)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:             "Select a material to edit (type to filter; Esc to finish)",
		Items:             items,
		Templates:         templates,
		Size:              len(items),
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
			return engine.Entry{}, true, nil
		}
		// Fall back to the plain selector on unexpected prompt errors
		return selectMaterialSimple(entries)
	}

	return entries[idx], false, nil
}

// selectMaterialSimple provides a numbered list over basic stdin
// without cursor control. User types a number or presses Enter to
// finish.
func selectMaterialSimple(entries []engine.Entry) (engine.Entry, bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Materials:")
	for i, e := range entries {
		fmt.Printf("%2d) %s\n", i+1, e)
	}
	fmt.Print("Enter number to edit, or press Enter to finish: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return engine.Entry{}, true, nil
	}
	for idx := range entries {
		if line == fmt.Sprintf("%d", idx+1) {
			return entries[idx], false, nil
		}
	}
	return engine.Entry{}, true, fmt.Errorf("invalid selection: %q", line)
}

// promptQuantity asks for the new kilogram amount for entry.
func promptQuantity(entry engine.Entry) (float64, bool, error) {
	prompt := promptui.Prompt{
		Label:   fmt.Sprintf("New quantity for %s in kg (currently %s)", entry.Label, FormatQty(entry.Quantity)),
		Default: FormatQty(entry.Quantity),
		Validate: func(s string) error {
			_, err := ParseQuantity(s)
			return err
		},
		Stdout: NoBellStdout,
	}

	raw, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
			return 0, true, nil
		}
		return 0, false, err
	}

	qty, err := ParseQuantity(raw)
	if err != nil {
		return 0, false, err
	}
	return qty, false, nil
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("simple-select", false, "use the plain numbered selector instead of the full-screen list")
}
