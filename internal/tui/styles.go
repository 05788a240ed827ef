package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7D56F4")
	muted  = lipgloss.Color("#6C6C6C")
	danger = lipgloss.Color("#E0525A")
	good   = lipgloss.Color("#3FB27F")
)

// Styles groups the lipgloss styles used by the quiz screens.
type Styles struct {
	Card       lipgloss.Style
	Title      lipgloss.Style
	Progress   lipgloss.Style
	Question   lipgloss.Style
	Option     lipgloss.Style
	Selected   lipgloss.Style
	Section    lipgloss.Style
	MethodName lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
}

// DefaultStyles returns the card look used by the terminal quiz.
func DefaultStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),

		Progress: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Question: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Option: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted),

		Selected: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Foreground(accent).
			Bold(true),

		Section: lipgloss.NewStyle().
			Foreground(good).
			Bold(true).
			MarginTop(1),

		MethodName: lipgloss.NewStyle().
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(2),

		Value: lipgloss.NewStyle(),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}
