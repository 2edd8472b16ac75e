package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"github.com/wastenot/brik/engine"
)

// dashboardCmd runs the full-screen live view: quantity bars on the
// left, derived metrics on the right, in-place editing of both the
// quantities and the conversion parameters.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Full-screen live view of quantities and derived metrics",
	Long:    "A full-screen terminal dashboard. Move with arrow keys, press enter to edit the selected quantity or setting, r to reset everything to defaults, q to quit.",
	RunE:    runDashboard,
	Aliases: []string{"dash", "tui"},
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !isInteractiveAllowed(false) {
		return fmt.Errorf("dashboard needs an interactive terminal")
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	m := newDashboardModel(eng)
	// Engine notifications arrive as messages so anything that mutates
	// state (including a future cascade from an observer) re-renders.
	unsubscribe := eng.Subscribe(func() {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// stateChangedMsg is delivered when the engine notifies its observers.
type stateChangedMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	metricsBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const barWidth = 28

type dashboardModel struct {
	eng *engine.Engine

	cursor  int
	editing bool
	input   textinput.Model
	errMsg  string

	updates chan struct{}
}

func newDashboardModel(eng *engine.Engine) *dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "kg"
	ti.CharLimit = 16
	ti.Width = 16

	return &dashboardModel{
		eng:     eng,
		input:   ti,
		updates: make(chan struct{}, 1),
	}
}

// rowCount is the materials followed by the four settings.
func (m *dashboardModel) rowCount() int {
	return len(m.eng.OrderedEntries()) + len(engine.SettingNames)
}

// rowLabel returns the label of row i and whether it is a setting row.
func (m *dashboardModel) rowLabel(i int) (string, bool) {
	entries := m.eng.OrderedEntries()
	if i < len(entries) {
		return entries[i].Label, false
	}
	return engine.SettingNames[i-len(entries)], true
}

func (m *dashboardModel) rowValue(i int) float64 {
	label, isSetting := m.rowLabel(i)
	if isSetting {
		v, _ := m.eng.Setting(label)
		return v
	}
	v, _ := m.eng.Quantity(label)
	return v
}

func (m *dashboardModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return stateChangedMsg{}
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		// State already re-read in View; just keep listening.
		return m, m.waitForUpdate()

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m *dashboardModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case "r":
		if err := m.eng.ResetToDefaults(); err != nil && !errors.Is(err, engine.ErrPersistence) {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
	case "enter":
		m.editing = true
		m.errMsg = ""
		m.input.SetValue(FormatQty(m.rowValue(m.cursor)))
		m.input.CursorEnd()
		m.input.Focus()
	}
	return m, nil
}

func (m *dashboardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.applyEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *dashboardModel) applyEdit() {
	value, err := ParseQuantity(m.input.Value())
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	label, isSetting := m.rowLabel(m.cursor)
	if isSetting {
		err = m.eng.UpdateSetting(label, value)
	} else {
		err = m.eng.UpdateValue(label, value)
	}
	if err != nil && !errors.Is(err, engine.ErrPersistence) {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func (m *dashboardModel) View() string {
	entries := m.eng.OrderedEntries()

	maxQty := 0.0
	labelWidth := 0
	for _, e := range entries {
		if e.Quantity > maxQty {
			maxQty = e.Quantity
		}
		if len(e.Label) > labelWidth {
			labelWidth = len(e.Label)
		}
	}
	for _, name := range engine.SettingNames {
		if len(name) > labelWidth {
			labelWidth = len(name)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("brik — bio-brick conversion dashboard"))
	b.WriteString("\n\n")

	for i, e := range entries {
		b.WriteString(m.renderRow(i, e.Label, e.Quantity, "kg", barStyle(i, len(entries)).Render(Bar(e.Quantity, maxQty, barWidth)), labelWidth))
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("settings"))
	b.WriteString("\n")
	for j, name := range engine.SettingNames {
		i := len(entries) + j
		v, _ := m.eng.Setting(name)
		b.WriteString(m.renderRow(i, name, v, settingUnits[name], "", labelWidth))
	}

	b.WriteString("\n")
	b.WriteString(m.renderMetrics())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("↑/↓ move · enter edit · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *dashboardModel) renderRow(i int, label string, value float64, unit, bar string, labelWidth int) string {
	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("▸ ")
	}

	amount := fmt.Sprintf("%8s %s", FormatQty(value), unit)
	if m.editing && i == m.cursor {
		amount = m.input.View()
	}

	line := fmt.Sprintf("%s%-*s %s", marker, labelWidth, label, amount)
	if bar != "" {
		line += "  " + bar
	}
	return line + "\n"
}

func (m *dashboardModel) renderMetrics() string {
	s := m.eng.Settings()
	body := fmt.Sprintf(
		"total waste      %s kg\nbricks           %d\nvolume diverted  %s m³\narea reduced     %s m²\nlandfill saved   %.4f%% of %s m²",
		FormatQty(m.eng.TotalAvailableWaste()),
		m.eng.BricksProducible(),
		FormatQty(m.eng.VolumeDiverted()),
		FormatQty(m.eng.AreaReduced()),
		m.eng.PercentLandfillReduced(),
		FormatQty(s.LandfillArea),
	)
	return metricsBorder.Render(body)
}

// barStyle gives each material a stable color along a green→amber ramp
// based on its registry position, so bars keep their color as values
// change.
func barStyle(i, n int) lipgloss.Style {
	if n <= 1 {
		n = 2
	}
	hue := 130 - 100*float64(i)/float64(n-1) // 130 (green) down to 30 (amber)
	c := colorful.Hsv(hue, 0.65, 0.9)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

//nolint:gochecknoinits
func init() {
	rootCmd.AddCommand(dashboardCmd)
}
