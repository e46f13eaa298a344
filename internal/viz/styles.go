package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Trail   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Warning lipgloss.Style
	Hint    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		Body:    lipgloss.NewStyle().Foreground(t.Body),
		Trail:   lipgloss.NewStyle().Foreground(t.Trail),
		Label:   lipgloss.NewStyle().Foreground(t.Label),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Value),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Label),
	}
}

// Stat renders one "label value" row padded to a fixed label width.
func (s Styles) Stat(label string, value any) string {
	return s.Label.Render(fmt.Sprintf("%-11s", label)) + s.Value.Render(fmt.Sprint(value))
}

// TitledPanel renders content in a bordered panel with a heading line.
func (s Styles) TitledPanel(title, content string) string {
	return s.Panel.Render(s.Title.Render(title) + "\n" + content)
}

// ProgressBar renders fraction in [0, 1] as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values as block characters scaled to
// their own min and max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[min(max(idx, 0), len(sparkChars)-1)])
	}
	return b.String()
}
