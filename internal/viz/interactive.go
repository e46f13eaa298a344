package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/scenario"
)

// App lets the user pick a preset and then runs it live. Esc returns to
// the list.
type App struct {
	presets []string
	cursor  int
	live    *Model
	logger  *zap.SugaredLogger
	styles  Styles
	err     error
}

func NewApp(logger *zap.SugaredLogger) App {
	return App{
		presets: config.ListPresets(),
		logger:  logger,
		styles:  NewStyles(Themes[0]),
	}
}

// PresetBuilder builds a fresh copy of the named preset on every call.
func PresetBuilder(name string, logger *zap.SugaredLogger) Builder {
	return func() (*scenario.Scene, error) {
		sc := config.GetPreset(name)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		return scenario.Build(sc, logger)
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.live != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			a.live = nil
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		live := next.(Model)
		a.live = &live
		return a, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		live, err := NewModel(PresetBuilder(a.presets[a.cursor], a.logger))
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		a.live = &live
		return a, live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.live != nil {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n  " + a.styles.Title.Render("RIGIDSIM") + "\n")
	b.WriteString("  " + a.styles.Hint.Render("particle and rigid body presets") + "\n\n")
	for i, name := range a.presets {
		desc := config.Presets[name].Description
		if i == a.cursor {
			b.WriteString("  " + a.styles.Value.Render("▸ "+fmt.Sprintf("%-10s", name)) + " " + a.styles.Body.Render(desc) + "\n")
		} else {
			b.WriteString("    " + a.styles.Label.Render(fmt.Sprintf("%-10s %s", name, desc)) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n  " + a.styles.Warning.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n  " + a.styles.Hint.Render("j/k navigate  enter run  esc back  q quit") + "\n")
	return b.String()
}

func RunInteractive(logger *zap.SugaredLogger) error {
	_, err := tea.NewProgram(NewApp(logger), tea.WithAltScreen()).Run()
	return err
}
