package viz

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name    string
	Border  lipgloss.Color
	Title   lipgloss.Color
	Body    lipgloss.Color
	Trail   lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:    "lab",
		Border:  lipgloss.Color("#444466"),
		Title:   lipgloss.Color("#00ffff"),
		Body:    lipgloss.Color("#ffffff"),
		Trail:   lipgloss.Color("#5f87af"),
		Label:   lipgloss.Color("#888899"),
		Value:   lipgloss.Color("#00ccff"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Border:  lipgloss.Color("#005500"),
		Title:   lipgloss.Color("#88ff88"),
		Body:    lipgloss.Color("#00ff00"),
		Trail:   lipgloss.Color("#00aa00"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#88ff88"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffff00"),
		Warning: lipgloss.Color("#ff0000"),
	}

	ThemePaper = Theme{
		Name:    "paper",
		Border:  lipgloss.Color("#888888"),
		Title:   lipgloss.Color("#ffffff"),
		Body:    lipgloss.Color("#ffffff"),
		Trail:   lipgloss.Color("#666666"),
		Label:   lipgloss.Color("#aaaaaa"),
		Value:   lipgloss.Color("#0088ff"),
		Running: lipgloss.Color("#00cc66"),
		Paused:  lipgloss.Color("#ffaa00"),
		Warning: lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeLab, ThemePhosphor, ThemePaper}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme cycles through Themes.
func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
