package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("viz: unknown theme")

// Theme colors the live view.
type Theme struct {
	Name      string
	Particles lipgloss.Color
	Colliders lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:      "ember",
		Particles: lipgloss.Color("#ffb347"),
		Colliders: lipgloss.Color("#5f5f87"),
		Accent:    lipgloss.Color("#ff6b6b"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Warning:   lipgloss.Color("#ffc048"),
	}

	ThemeFrost = Theme{
		Name:      "frost",
		Particles: lipgloss.Color("#e0f0ff"),
		Colliders: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#00a8cc"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Warning:   lipgloss.Color("#ffcc00"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Particles: lipgloss.Color("#88ff88"),
		Colliders: lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#007700"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{ThemeEmber, ThemeFrost, ThemeRetro}
)

// GetTheme returns the named theme, or the first one if name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// SetTheme selects a theme by name.
func SetTheme(name string) error {
	for _, t := range Themes {
		if t.Name == name {
			CurrentTheme = t
			return nil
		}
	}
	return fmt.Errorf("%w: %s (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
