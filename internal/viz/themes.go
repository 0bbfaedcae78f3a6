package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Grid   lipgloss.Color
	Bone   lipgloss.Color
	Hand   lipgloss.Color
	Handle lipgloss.Color
	Active lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Grid:   lipgloss.Color("#333344"),
		Bone:   lipgloss.Color("#00ffff"),
		Hand:   lipgloss.Color("#ffff00"),
		Handle: lipgloss.Color("#ff00ff"),
		Active: lipgloss.Color("#00ff88"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Grid:   lipgloss.Color("#003300"),
		Bone:   lipgloss.Color("#00ff00"),
		Hand:   lipgloss.Color("#88ff88"),
		Handle: lipgloss.Color("#00cc00"),
		Active: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Grid:   lipgloss.Color("#444444"),
		Bone:   lipgloss.Color("#ffffff"),
		Hand:   lipgloss.Color("#cccccc"),
		Handle: lipgloss.Color("#0088ff"),
		Active: lipgloss.Color("#ff4444"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// Next cycles to the theme after t.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) InkStyle(ink Ink) lipgloss.Style {
	var c lipgloss.Color
	switch ink {
	case InkGrid:
		c = t.Grid
	case InkBone:
		c = t.Bone
	case InkHand:
		c = t.Hand
	case InkHandle:
		c = t.Handle
	case InkActive:
		c = t.Active
	default:
		c = t.Text
	}
	return lipgloss.NewStyle().Foreground(c)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
