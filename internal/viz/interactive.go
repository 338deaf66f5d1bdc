package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/animsim/internal/config"
)

var presetInfo = map[string]string{
	"fountain": "fast stream onto a soft floor",
	"bounce":   "slow drip onto a lively floor",
	"sphere":   "drops off a ball onto the floor",
	"drag":     "air resistance on a flat throw",
}

var (
	pickerTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pickerSub   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	pickerArrow = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	pickerName  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	pickerDesc  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	pickerDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	pickerKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// picker lists the particle presets and hands the chosen one to a live
// view.
type picker struct {
	cursor  int
	presets []string
	live    *Model
	err     error
}

func newPicker() picker {
	return picker{presets: config.ListPresets("particles")}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		live, err := NewModel(config.GetPreset("particles", m.presets[m.cursor]))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live = &live
		return m, live.Init()
	}
	return m, nil
}

func (m picker) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + pickerTitle.Render("ANIMSIM") + "\n    " + pickerSub.Render("particle scenes") + "\n    " + pickerSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pickerArrow.Render("▸"), pickerName.Render(fmt.Sprintf("%-10s", name)), pickerDesc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", pickerDim.Render(fmt.Sprintf("%-10s", name)), pickerDim.Render(presetInfo[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + pickerKey.Render("j/k") + pickerDim.Render(" navigate  ") + pickerKey.Render("enter") + pickerDim.Render(" select  ") + pickerKey.Render("q") + pickerDim.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker.
func RunInteractive() error {
	_, err := tea.NewProgram(newPicker(), tea.WithAltScreen()).Run()
	return err
}

// RunLive opens the live view for cfg. When events is non-nil the scene
// reloads from each path received on it.
func RunLive(cfg *config.Config, events <-chan string) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m.WithReload(events), tea.WithAltScreen()).Run()
	return err
}
